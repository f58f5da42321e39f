package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airmailer/internal/services"
)

// ContextAccountID is the key under which authenticated middleware stores the
// account id.
const ContextAccountID = "account_id"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// AuthMiddleware guards session routes: a live (signed, unexpired) token is
// required; refresh handles its own grace window separately.
func AuthMiddleware(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token required"})
			return
		}
		accountID, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}
		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}
