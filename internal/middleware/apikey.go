package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airmailer/internal/services"
)

// APIKeyMiddleware authenticates the dispatch route by bearer API key.
func APIKeyMiddleware(keys services.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "API key required in Authorization header"})
			return
		}
		accountID, err := keys.Authenticate(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid API key"})
			return
		}
		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}
