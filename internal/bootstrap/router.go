package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/floorplan-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/api/http/middleware"
	fphttp "github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/http"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/metrics"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	CORSOrigins []string

	// Health dependencies probed by /healthz, keyed by name.
	Health map[string]httpapi.Pinger

	Layouts *fphttp.Handler
	// Auth guards the owner-scoped layout routes.
	Auth    gin.HandlerFunc
	Limiter *middleware.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(logger))
	r.Use(metrics.Middleware())
	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, "X-User-Id"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Health)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")

	compute := api.Group("/layouts")
	if dep.Limiter != nil {
		compute.Use(dep.Limiter.Middleware())
	}
	dep.Layouts.RegisterCompute(compute)

	dep.Layouts.RegisterRead(api.Group("/layouts"))

	owned := api.Group("/layouts")
	if dep.Auth != nil {
		owned.Use(dep.Auth)
	}
	dep.Layouts.RegisterOwned(owned)

	return r
}
