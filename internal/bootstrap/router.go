package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpapi "github.com/americano/projectsync/internal/api/http"
	"github.com/americano/projectsync/internal/api/http/middleware"
	"github.com/americano/projectsync/internal/api/http/routes"
	"github.com/americano/projectsync/internal/projects/repository"
)

// RouterDeps carries what BuildRouter wires into the engine. A nil Logger
// or Registry is replaced with a no-op logger or a fresh registry.
type RouterDeps struct {
	ServiceName string
	Version     string
	Store       repository.Store
	Logger      *zap.Logger
	CORSOrigins []string
	Registry    *prometheus.Registry
}

// BuildRouter returns the engine with middleware, platform endpoints and the
// project API mounted.
func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := dep.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(logger))
	r.Use(middleware.NewMetrics("projectsync", reg).Middleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	var pinger httpapi.Pinger
	if dep.Store != nil {
		pinger = dep.Store
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger).RegisterRoutes(r)
	httpapi.RegisterMetricsRoute(r, reg)

	routes.RegisterAPI(r, routes.APIDeps{
		Store:  dep.Store,
		Logger: logger,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
