package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"airmailer/internal/config"
	"airmailer/internal/handlers"
	"airmailer/internal/repositories"
	"airmailer/internal/routes"
	"airmailer/internal/services"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Config error: ", err)
	}

	// === DB pool ===
	// One process-wide pool, constructed here, passed down explicitly and
	// closed on the way out.
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Database open error: ", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleSec) * time.Second)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifeSec) * time.Second)
	repositories.QueryTimeout = time.Duration(cfg.Database.QueryTimeoutSec) * time.Second

	if err := db.Ping(); err != nil {
		log.Fatal("Database ping error: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}()

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)
	apiKeyRepo := repositories.NewAPIKeyRepository(db)
	emailLogRepo := repositories.NewEmailLogRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret)
	mailer := services.NewMailer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.App.FrontendURL,
	)
	apiKeyService := services.NewAPIKeyService(apiKeyRepo, accountRepo, authService)
	accountService := services.NewAccountService(accountRepo, apiKeyService, authService, mailer)
	verificationService := services.NewVerificationService(accountRepo, mailer)
	resetService := services.NewResetService(accountRepo, authService, mailer)
	sendService := services.NewSendService(emailLogRepo, mailer, cfg.Dispatch.DailyLimit, cfg.Dispatch.LogFailures)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService, verificationService, resetService)
	keysHandler := handlers.NewKeysHandler(apiKeyService)
	emailHandler := handlers.NewEmailHandler(sendService)
	logsHandler := handlers.NewLogsHandler(sendService)
	healthHandler := handlers.NewHealthHandler(db)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.App.FrontendURL))
	router.Use(securityHeaders())

	routes.SetupRoutes(
		router,
		authHandler,
		keysHandler,
		emailHandler,
		logsHandler,
		healthHandler,
		authService,
		apiKeyService,
		accountRepo,
	)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server error: ", err)
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}
