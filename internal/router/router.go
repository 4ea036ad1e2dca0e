package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/api"
	"github.com/pageza/budget-chef/backend/internal/middleware"
)

// SetupRouter builds the gin engine with the shared middleware chain and all routes
func SetupRouter(cfg *config.Config, deps api.Dependencies, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	if err := api.RegisterRoutes(router, deps); err != nil {
		return nil, err
	}
	return router, nil
}
