package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}
