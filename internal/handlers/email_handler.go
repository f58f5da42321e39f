package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"airmailer/internal/models"
	"airmailer/internal/services"
	"airmailer/internal/validators"
)

type EmailHandler struct {
	sends services.SendService
}

func NewEmailHandler(sends services.SendService) *EmailHandler {
	return &EmailHandler{sends: sends}
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Recipient, subject, and message content required")
		return
	}

	err := h.sends.Send(c.Request.Context(), accountID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, validators.ErrMessageEmpty),
			errors.Is(err, validators.ErrMessageTooBig),
			errors.Is(err, validators.ErrRecipientEmail):
			fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrQuotaExceeded):
			fail(c, http.StatusTooManyRequests, "Daily limit reached")
		default:
			log.Printf("[email][send] failed for account=%d: %v", accountID(c), err)
			fail(c, http.StatusInternalServerError, "Send failed")
		}
		return
	}

	ok(c, http.StatusOK, "Email sent", nil)
}
