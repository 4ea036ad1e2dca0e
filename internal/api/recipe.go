package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/middleware"
	"github.com/pageza/budget-chef/backend/internal/service"
	"github.com/pageza/budget-chef/backend/internal/types"
)

type RecipeHandler struct {
	generator service.RecipeGenerator
	recipes   service.IRecipeService
	saved     service.ISavedRecipeService
}

func NewRecipeHandler(generator service.RecipeGenerator, recipes service.IRecipeService, saved service.ISavedRecipeService) *RecipeHandler {
	return &RecipeHandler{
		generator: generator,
		recipes:   recipes,
		saved:     saved,
	}
}

func (h *RecipeHandler) RegisterRoutes(recipes *gin.RouterGroup, limiter *middleware.RateLimiter) {
	generate := []gin.HandlerFunc{h.GenerateRecipes}
	if limiter != nil {
		generate = append([]gin.HandlerFunc{limiter.Middleware()}, generate...)
	}

	recipes.POST("/generate", generate...)
	recipes.POST("/save", h.SaveRecipe)
	recipes.GET("/saved/:userId", h.ListSavedRecipes)
	recipes.GET("/:id", h.GetRecipe)
}

// GenerateRecipes returns candidate recipes for the posted pantry
func (h *RecipeHandler) GenerateRecipes(c *gin.Context) {
	var req types.GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperrors.InvalidInput(validationMessage(err)))
		return
	}

	if len(service.NormalizeIngredients(req.Ingredients)) == 0 {
		respondError(c, apperrors.InvalidInput("No ingredients provided to generate recipes."))
		return
	}

	recipes, err := h.generator.Generate(c.Request.Context(), req.Ingredients, types.CanonicalPreferences(req.Preferences))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe with ingredients flagged against the caller's pantry.
// The pantry comes from ?pantry=a,b or repeated ?pantry= parameters.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	detail, err := h.recipes.GetRecipeDetail(c.Request.Context(), c.Param("id"), pantryFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func pantryFromQuery(c *gin.Context) []string {
	var pantry []string
	for _, value := range c.QueryArray("pantry") {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				pantry = append(pantry, item)
			}
		}
	}
	return pantry
}

// SaveRecipe stores a recipe in the user's saved list
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("Missing required fields (recipeId or userId)."))
		return
	}

	if err := h.saved.SaveRecipe(c.Request.Context(), req.UserID.String(), req.RecipeID.String(), req.RecipeTitle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.SaveRecipeResponse{
		Message: "Recipe saved successfully!",
		Saved:   true,
	})
}

// ListSavedRecipes returns the user's saved recipes, newest first
func (h *RecipeHandler) ListSavedRecipes(c *gin.Context) {
	saved, err := h.saved.ListSaved(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
