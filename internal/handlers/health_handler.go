package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check probes store connectivity.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, "Database unreachable")
		return
	}
	ok(c, http.StatusOK, "ok", nil)
}
