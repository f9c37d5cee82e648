package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
	"github.com/honeymoneyapp/honeymoney_backend/internal/platform/config"
)

// RegisterRoutes sets up all API endpoints on the Gin engine. The public
// surface is the health probe and the auth routes; everything else sits
// behind the JWT middleware under /api/v1.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, rateLimiter gin.HandlerFunc) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1")
	if rateLimiter != nil {
		public.Use(rateLimiter)
	}
	registerAuthRoutes(public, services.Auth, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes wires the authenticated routes.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
	registerProjectionRoutes(v1, services.Projection)
	registerCategoryRoutes(v1, services.Category)
	registerTagRoutes(v1, services.Tag)
	registerReferenceRoutes(v1, services.MovementType, services.PaymentType)
}

// registerCustomValidators installs binding validators used by the DTOs.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("projectionstate", func(fl validator.FieldLevel) bool {
			return domain.ValidProjectionState(domain.ProjectionState(fl.Field().String()))
		})
	}
}
