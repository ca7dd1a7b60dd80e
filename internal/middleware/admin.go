package middleware

import (
	"net/http"
	"strings"

	"worktrack/internal/model"
	"worktrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type adminRequest struct {
	Email string `json:"email"`
}

// AdminOnly lets the request through only when the JSON body's email
// belongs to a user with the admin role. It drains Request.Body, so a
// guarded handler that needs the body must bind it with ShouldBindBodyWith.
func AdminOnly(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminRequest
		_ = c.ShouldBindBodyWith(&req, binding.JSON)

		if err := users.RequireAdmin(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewMessageResponse("forbidden access"))
			return
		}
		c.Next()
	}
}
