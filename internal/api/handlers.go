package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/budget-chef/backend/internal/database"
	"github.com/pageza/budget-chef/backend/internal/middleware"
	"github.com/pageza/budget-chef/backend/internal/service"
)

// Dependencies holds everything the HTTP handlers call into
type Dependencies struct {
	DB           *gorm.DB
	Generator    service.RecipeGenerator
	Recipes      service.IRecipeService
	SavedRecipes service.ISavedRecipeService
	Auth         service.IAuthService
	// GenerateLimiter is optional; generation is unlimited without it
	GenerateLimiter *middleware.RateLimiter
}

// Root answers the liveness probe used by the web client
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Budget-Chef Backend API is Running!")
}

// HealthHandler reports whether the database is reachable
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	router.GET("/", Root)
	router.GET("/health", HealthHandler(deps.DB))

	api := router.Group("/api")

	recipeHandler := NewRecipeHandler(deps.Generator, deps.Recipes, deps.SavedRecipes)
	recipeHandler.RegisterRoutes(api.Group("/recipes"), deps.GenerateLimiter)

	userHandler := NewUserHandler(deps.Auth)
	userHandler.RegisterRoutes(api.Group("/users"))

	return nil
}
