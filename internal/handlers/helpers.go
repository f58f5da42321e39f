package handlers

import (
	"github.com/gin-gonic/gin"

	"airmailer/internal/middleware"
)

// respond writes the uniform {success, message, ...} envelope.
func respond(c *gin.Context, code int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

func ok(c *gin.Context, code int, message string, payload gin.H) {
	respond(c, code, true, message, payload)
}

func fail(c *gin.Context, code int, message string) {
	respond(c, code, false, message, nil)
}

func accountID(c *gin.Context) int {
	return c.GetInt(middleware.ContextAccountID)
}
