package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"airmailer/internal/services"
)

type LogsHandler struct {
	sends services.SendService
}

func NewLogsHandler(sends services.SendService) *LogsHandler {
	return &LogsHandler{sends: sends}
}

// Get lists the account's 50 most recent dispatch records, newest first.
func (h *LogsHandler) Get(c *gin.Context) {
	records, err := h.sends.Logs(c.Request.Context(), accountID(c))
	if err != nil {
		log.Printf("[logs][get] failed for account=%d: %v", accountID(c), err)
		fail(c, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	logs := make([]gin.H, 0, len(records))
	for _, r := range records {
		logs = append(logs, gin.H{
			"id":        r.ID,
			"to":        r.Recipient,
			"subject":   "Email Sent",
			"status":    r.Status,
			"timestamp": r.SentAt,
			"messageId": fmt.Sprintf("msg_%d", r.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}
