package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/seed"
	"github.com/pageza/budget-chef/backend/internal/testhelpers"
)

func TestRecipesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range seed.Recipes() {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Ingredients, r.ID)
		assert.NotEmpty(t, r.Instructions, r.ID)
		assert.True(t, r.TotalEstimatedCost.IsPositive(), r.ID)
	}
	assert.True(t, seen["101"])
}

func TestApplyIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	n, err := seed.Apply(ctx, repo, false)
	require.NoError(t, err)
	assert.Equal(t, len(seed.Recipes()), n)

	_, err = seed.Apply(ctx, repo, false)
	require.NoError(t, err)
	_, err = seed.Apply(ctx, repo, true)
	require.NoError(t, err)

	var recipes, lines int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lines).Error)
	assert.Equal(t, int64(n), recipes)

	want := 0
	for _, r := range seed.Recipes() {
		want += len(r.Ingredients)
	}
	assert.Equal(t, int64(want), lines)
}
