package handler

import (
	"net/http"

	"worktrack/internal/model"
	"worktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkHandler handles work record requests
type WorkHandler struct {
	workService *service.WorkService
}

// NewWorkHandler creates a new work record handler
func NewWorkHandler(workService *service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// List handles GET /work
func (h *WorkHandler) List(c *gin.Context) {
	records, err := h.workService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch work records"))
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListByEmail handles GET /works/:email
func (h *WorkHandler) ListByEmail(c *gin.Context) {
	records, err := h.workService.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch work records"))
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /work-post
func (h *WorkHandler) Create(c *gin.Context) {
	var record model.Document
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body"))
		return
	}

	res, err := h.workService.Create(c.Request.Context(), record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to save work record"))
		return
	}
	c.JSON(http.StatusOK, res)
}
