package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/testhelpers"
)

func TestRecipeRepository_FindByID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedRecipes(t, db)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	recipe, err := repo.FindByID(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, "Quick Pasta with Pesto & Cherry Tomatoes", recipe.Title)
	require.Len(t, recipe.Ingredients, 5)
	assert.Equal(t, "spaghetti", recipe.Ingredients[0].IngredientName)
	assert.Equal(t, "garlic", recipe.Ingredients[4].IngredientName)
	assert.Len(t, recipe.Instructions, 5)

	_, err = repo.FindByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecipeRepository_UpsertReplacesIngredients(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		ID:                 "r-1",
		Title:              "Toast",
		TotalEstimatedCost: decimal.NewFromFloat(1.5),
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "bread", Quantity: "2 slices"},
			{IngredientName: "butter", Quantity: "1 tbsp", Position: 1},
		},
	}
	require.NoError(t, repo.Upsert(ctx, recipe))

	recipe.Title = "Jam Toast"
	recipe.Ingredients = []models.RecipeIngredient{{IngredientName: "jam", Quantity: "1 tbsp"}}
	require.NoError(t, repo.Upsert(ctx, recipe))

	got, err := repo.FindByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Jam Toast", got.Title)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "jam", got.Ingredients[0].IngredientName)
}

func TestRecipeRepository_DeleteOrphansSavedRecipes(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedRecipes(t, db)
	recipes := repository.NewRecipeRepository(db)
	saved := repository.NewSavedRecipeRepository(db)
	ctx := context.Background()

	require.NoError(t, saved.Create(ctx, &models.SavedRecipe{UserID: "1", RecipeID: "101", RecipeTitle: "Pesto Pasta"}))
	require.NoError(t, recipes.Delete(ctx, "101"))

	_, err := recipes.FindByID(ctx, "101")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var lines int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", "101").Count(&lines).Error)
	assert.Zero(t, lines)

	list, err := saved.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pesto Pasta", list[0].RecipeTitle)

	assert.ErrorIs(t, recipes.Delete(ctx, "101"), repository.ErrNotFound)
}

func TestRecipeRepository_ListWithIngredients(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedRecipes(t, db)
	repo := repository.NewRecipeRepository(db)

	recipes, err := repo.ListWithIngredients(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, recipes)
	for i := 1; i < len(recipes); i++ {
		assert.LessOrEqual(t, recipes[i-1].Title, recipes[i].Title)
	}
	for _, r := range recipes {
		assert.NotEmpty(t, r.Ingredients, r.ID)
	}
}

func TestSavedRecipeRepository_DuplicateAndOrdering(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewSavedRecipeRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, &models.SavedRecipe{UserID: "u1", RecipeID: "1", RecipeTitle: "First", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &models.SavedRecipe{UserID: "u1", RecipeID: "2", RecipeTitle: "Second", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.SavedRecipe{UserID: "u2", RecipeID: "1", RecipeTitle: "Other user"}))

	err := repo.Create(ctx, &models.SavedRecipe{UserID: "u1", RecipeID: "1", RecipeTitle: "First again"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].RecipeID)
	assert.Equal(t, "1", list[1].RecipeID)

	empty, err := repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUserRepository(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "chef", Email: "chef@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.FindByEmail(ctx, " Chef@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef", byID.Username)

	err = repo.Create(ctx, &models.User{Username: "chef2", Email: "chef@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
