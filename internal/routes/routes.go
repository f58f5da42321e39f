package routes

import (
	"github.com/gin-gonic/gin"

	"airmailer/internal/handlers"
	"airmailer/internal/middleware"
	"airmailer/internal/repositories"
	"airmailer/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	keysHandler *handlers.KeysHandler,
	emailHandler *handlers.EmailHandler,
	logsHandler *handlers.LogsHandler,
	healthHandler *handlers.HealthHandler,
	authService services.AuthService,
	apiKeyService services.APIKeyService,
	accountRepo repositories.AccountRepository,
) *gin.Engine {
	sessionAuth := middleware.AuthMiddleware(authService)
	requireVerified := middleware.RequireVerified(accountRepo)
	apiKeyAuth := middleware.APIKeyMiddleware(apiKeyService)
	publicLimit := middleware.NewIPRateLimiter(5, 10).Middleware()

	r.GET("/healthz", healthHandler.Check)

	auth := r.Group("/auth")
	{
		// public, IP-throttled
		auth.POST("/signup", publicLimit, authHandler.Signup)
		auth.POST("/login", publicLimit, authHandler.Login)
		auth.POST("/forgot-password", publicLimit, authHandler.ForgotPassword)

		// token travels in the body
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/reset-password", authHandler.ResetPassword)

		// refresh accepts expired-within-grace tokens, so it parses the
		// header itself instead of going through sessionAuth
		auth.POST("/refresh", authHandler.Refresh)

		auth.POST("/verify-password", sessionAuth, authHandler.VerifyPassword)
		auth.POST("/resend-verification", sessionAuth, authHandler.ResendVerification)
		auth.GET("/status", sessionAuth, authHandler.Status)
	}

	keys := r.Group("/keys", sessionAuth, requireVerified)
	{
		keys.GET("/get", keysHandler.Get)
		keys.POST("/regenerate", keysHandler.Regenerate)
	}

	email := r.Group("/email", apiKeyAuth)
	{
		email.POST("/send", emailHandler.Send)
	}

	logs := r.Group("/logs", sessionAuth, requireVerified)
	{
		logs.GET("/get", logsHandler.Get)
	}

	return r
}
