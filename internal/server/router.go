package server

import (
	"worktrack/internal/config"
	"worktrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, h *Handlers, s *Services, limiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(limiter.Handler())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	// admin prepends the guard when it is enabled
	admin := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.Guard.Enabled {
			return []gin.HandlerFunc{middleware.AdminOnly(s.User), next}
		}
		return []gin.HandlerFunc{next}
	}

	r.GET("/", h.Health.Liveness)

	// Payments
	r.POST("/create-payment-intent", h.Payment.CreateIntent)
	r.POST("/payments", h.Payment.Record)
	r.GET("/payment/:email", h.Payment.ListByEmail)

	// Users
	r.GET("/users", h.User.List)
	r.POST("/users", h.User.Create)
	r.GET("/user/:email", h.User.GetByEmail)
	r.GET("/employee/:slug", h.User.GetBySlug)
	r.PATCH("/users/update/:email", h.User.UpdateByEmail)
	r.DELETE("/users/fire/:id", admin(h.User.Deactivate)...)
	r.PATCH("/users-update/:id", admin(h.User.ToggleVerification)...)

	// Work records
	r.GET("/work", h.Work.List)
	r.GET("/works/:email", h.Work.ListByEmail)
	r.POST("/work-post", h.Work.Create)

	r.GET("/contact", h.Message.List)

	return r
}
