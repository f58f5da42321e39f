package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"airmailer/internal/services"
)

type KeysHandler struct {
	keys services.APIKeyService
}

func NewKeysHandler(keys services.APIKeyService) *KeysHandler {
	return &KeysHandler{keys: keys}
}

// Get returns the account's current key. The verified gate runs in
// middleware; the dashboard re-confirms the password via /auth/verify-password
// before showing it.
func (h *KeysHandler) Get(c *gin.Context) {
	key, err := h.keys.Get(c.Request.Context(), accountID(c))
	if err != nil {
		if errors.Is(err, services.ErrKeyNotFound) {
			fail(c, http.StatusNotFound, "API key not found")
			return
		}
		log.Printf("[keys][get] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to retrieve API key")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "apiKey": key})
}

func (h *KeysHandler) Regenerate(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		fail(c, http.StatusBadRequest, "Password required for security")
		return
	}

	key, err := h.keys.Rotate(c.Request.Context(), accountID(c), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			fail(c, http.StatusUnauthorized, "Incorrect password")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			log.Printf("[keys][regenerate] failed: %v", err)
			fail(c, http.StatusInternalServerError, "Failed to regenerate key")
		}
		return
	}

	ok(c, http.StatusOK, "API key regenerated successfully!", gin.H{"newApiKey": key})
}
