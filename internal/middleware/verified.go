package middleware

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"airmailer/internal/repositories"
)

// RequireVerified gates routes that only verified accounts may use. Runs
// after AuthMiddleware.
func RequireVerified(accounts repositories.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetInt(ContextAccountID)
		account, err := accounts.GetByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if !account.EmailVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Email not verified. Please verify your email first."})
			return
		}
		c.Next()
	}
}
