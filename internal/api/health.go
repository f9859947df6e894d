package api

import (
	"roleplay-chat/backend/pkg/health"

	"github.com/gin-gonic/gin"
)

// HealthHandler exposes the health checker's report
type HealthHandler struct {
	checker *health.Checker
}

// NewHealthHandler creates a health handler
func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Report handles GET /health
func (h *HealthHandler) Report(c *gin.Context) {
	gin.WrapF(h.checker.HTTPHandler())(c)
}
