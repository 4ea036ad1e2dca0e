package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// MockRecipeGenerator is a mock implementation of service.RecipeGenerator
type MockRecipeGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockRecipeGenerator) Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, ingredients, preferences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

// GetRecipeDetail mocks the GetRecipeDetail method
func (m *MockRecipeService) GetRecipeDetail(ctx context.Context, id string, pantry []string) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id, pantry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// MockSavedRecipeService is a mock implementation of service.ISavedRecipeService
type MockSavedRecipeService struct {
	mock.Mock
}

// SaveRecipe mocks the SaveRecipe method
func (m *MockSavedRecipeService) SaveRecipe(ctx context.Context, userID, recipeID, title string) error {
	args := m.Called(ctx, userID, recipeID, title)
	return args.Error(0)
}

// ListSaved mocks the ListSaved method
func (m *MockSavedRecipeService) ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}
