package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/veloxrp/econ_backend/internal/core/services"
)

// RegisterHandlers mounts all API routes on the engine.
func RegisterHandlers(r *gin.Engine, svc services.ServiceProvider) {
	r.GET("/healthz", GetHealth)

	v1 := r.Group("/api/v1")
	registerAccountRoutes(v1, svc.AccountSvc, svc.Resolver)
	registerEconomyRoutes(v1, svc.EconomySvc)
}
