package handler

import (
	"errors"
	"net/http"

	"worktrack/internal/model"
	"worktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles employee directory requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new User handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch users"))
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetByEmail handles GET /user/:email. An unknown email yields null.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch user"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var user model.Document
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body"))
		return
	}

	res, err := h.userService.Create(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to create user"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBySlug handles GET /employee/:slug
func (h *UserHandler) GetBySlug(c *gin.Context) {
	user, err := h.userService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.NewMessageResponse("Employee not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch employee"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateByEmail handles PATCH /users/update/:email
func (h *UserHandler) UpdateByEmail(c *gin.Context) {
	var patch model.Document
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body"))
		return
	}

	res, err := h.userService.UpdateByEmail(c.Request.Context(), c.Param("email"), patch)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("No fields to update"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to update user"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Deactivate handles DELETE /users/fire/:id
func (h *UserHandler) Deactivate(c *gin.Context) {
	user, err := h.userService.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid user id"))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, model.NewMessageResponse("User not found or already deactivated"))
		default:
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fire user"))
		}
		return
	}

	c.JSON(http.StatusOK, model.DeactivationResponse{
		Message: "User has been fired successfully",
		User:    user,
	})
}

// ToggleVerification handles PATCH /users-update/:id
func (h *UserHandler) ToggleVerification(c *gin.Context) {
	res, err := h.userService.ToggleVerification(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid employee id"))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, model.NewMessageResponse("Employee not found"))
		default:
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to update verification status"))
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
