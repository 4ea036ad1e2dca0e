package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/api"
	"github.com/pageza/budget-chef/backend/internal/middleware"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/router"
	"github.com/pageza/budget-chef/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New wires repositories, services and routes. redisClient may be nil, in which case
// recipe generation is not rate limited.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *zap.Logger) (*Server, error) {
	recipes := repository.NewRecipeRepository(db)

	generator, err := service.NewGenerator(cfg, recipes)
	if err != nil {
		return nil, err
	}

	var images service.ImagePresigner
	if cfg.S3BucketName != "" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Warn("recipe images disabled", zap.Error(err))
		} else {
			images = s3Config
		}
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil && cfg.GenerateRateLimit > 0 {
		limiter = middleware.NewGenerateRateLimiter(redisClient, cfg.GenerateRateLimit, log.Named("rate_limit"))
	}

	engine, err := router.SetupRouter(cfg, api.Dependencies{
		DB:              db,
		Generator:       generator,
		Recipes:         service.NewRecipeService(recipes, images),
		SavedRecipes:    service.NewSavedRecipeService(repository.NewSavedRecipeRepository(db), recipes),
		Auth:            service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.JWTDuration),
		GenerateLimiter: limiter,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up routes: %w", err)
	}

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// generation may wait on the LLM
			WriteTimeout: cfg.LLMTimeout + 15*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down. It never returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
