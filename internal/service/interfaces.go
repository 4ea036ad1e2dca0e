package service

import (
	"context"
	"time"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// RecipeGenerator turns a pantry and dietary preferences into candidate recipes.
// Implementations return an InvalidInput error for an empty pantry and wrap every
// other failure in ErrGenerationFailed.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error)
}

// IRecipeService defines the interface for recipe lookups
type IRecipeService interface {
	GetRecipeDetail(ctx context.Context, id string, pantry []string) (*types.RecipeDetail, error)
}

// ISavedRecipeService defines the interface for a user's saved recipes
type ISavedRecipeService interface {
	SaveRecipe(ctx context.Context, userID, recipeID, title string) error
	ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ImagePresigner issues temporary URLs for stored recipe images
type ImagePresigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}
