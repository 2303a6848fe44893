package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todos/internal/adapter/http/helper"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		helper.SendError(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Store unavailable", nil)
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}
