package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/testhelpers"
)

func TestStubGenerator(t *testing.T) {
	g := NewStubGenerator()
	ctx := context.Background()

	_, err := g.Generate(ctx, []string{" ", ""}, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))

	recipes, err := g.Generate(ctx, []string{"Chicken"}, []string{})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "AI_REC_1", recipes[0].ID)
	assert.Equal(t, "AI Recipe: Quick Chicken Dish", recipes[0].Title)
	assert.Equal(t, 6.25, recipes[0].EstimatedCost)
	assert.Equal(t, "AI Recipe: Default Budget Meal", recipes[1].Title)
	assert.Equal(t, 1, recipes[1].MissingItemsCount)
	for _, r := range recipes {
		assert.NotEmpty(t, r.Title)
	}

	recipes, err = g.Generate(ctx, []string{"rice"}, []string{"vegan"})
	require.NoError(t, err)
	assert.Equal(t, "AI Recipe: Vegan Budget Meal", recipes[1].Title)
	assert.Equal(t, []string{"Vegan"}, recipes[0].DietaryTags)
}

func TestCatalogGenerator(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.SeedRecipes(t, db)
	g := NewCatalogGenerator(repository.NewRecipeRepository(db))
	ctx := context.Background()

	t.Run("matches pantry", func(t *testing.T) {
		recipes, err := g.Generate(ctx, []string{"chicken"}, []string{})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Chicken and Rice Skillet", recipes[0].Title)
		assert.Equal(t, 0.4, recipes[0].CostEfficiency)
		assert.Equal(t, []string{"rice", "onion", "soy sauce"}, recipes[0].MissingItems)
		assert.Equal(t, 3, recipes[0].MissingItemsCount)
		assert.Equal(t, 7.1, recipes[0].EstimatedCost)
		assert.Equal(t, "Keto Chicken Salad", recipes[1].Title)
		for _, r := range recipes {
			assert.NotEmpty(t, r.Title)
		}
	})

	t.Run("filters by preference", func(t *testing.T) {
		recipes, err := g.Generate(ctx, []string{"chicken"}, []string{"Keto"})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "6", recipes[0].ID)
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		recipes, err := g.Generate(ctx, []string{"chicken"}, []string{"Vegan"})
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	})

	t.Run("empty pantry is invalid", func(t *testing.T) {
		_, err := g.Generate(ctx, nil, nil)
		assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
	})
}

func TestCatalogGeneratorStorageFailure(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	g := NewCatalogGenerator(repository.NewRecipeRepository(db))
	_, err = g.Generate(context.Background(), []string{"chicken"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
}

func chatServer(t *testing.T, status int, content string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json_object", req.ResponseFormat["type"])

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLLMGenerator(t *testing.T) {
	content := `{"recipes": [
		{
			"title": "Garlic Chicken Rice",
			"total_prep_time": "30 min",
			"estimated_cost": "$5.456",
			"dietary_tags": ["gluten-free", "Paleo"],
			"ingredients": [
				{"name": "Chicken Thighs", "quantity": "400g"},
				{"name": "rice", "quantity": "1 cup"},
				{"name": "garlic", "quantity": "3 cloves"}
			],
			"instructions": ["Cook the rice.", "Fry the chicken with garlic."]
		},
		{"title": "", "ingredients": [{"name": "water"}]}
	]}`

	db := testhelpers.SetupTestDB(t)
	recipes := repository.NewRecipeRepository(db)

	var calls int32
	srv := chatServer(t, http.StatusOK, content, &calls)
	g := NewLLMGenerator(LLMConfig{APIKey: "test-key", APIURL: srv.URL}, recipes)

	results, err := g.Generate(context.Background(), []string{"chicken", "rice"}, []string{"Gluten-Free"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	got := results[0]
	assert.Equal(t, "Garlic Chicken Rice", got.Title)
	assert.Equal(t, 5.46, got.EstimatedCost)
	assert.Equal(t, []string{"Gluten-Free"}, got.DietaryTags)
	assert.Equal(t, []string{"garlic"}, got.MissingItems)
	assert.Equal(t, 0.67, got.CostEfficiency)

	stored, err := recipes.FindByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Ingredients, 3)
	assert.Equal(t, "chicken thighs", stored.Ingredients[0].IngredientName)
}

func TestLLMGeneratorFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"upstream error status", http.StatusInternalServerError, `{}`},
		{"content is not json", http.StatusOK, `here are some recipes`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := chatServer(t, tt.status, tt.content, &calls)
			g := NewLLMGenerator(LLMConfig{APIKey: "test-key", APIURL: srv.URL}, nil)

			results, err := g.Generate(context.Background(), []string{"chicken"}, nil)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, "Failed to generate recipes due to a server error.", apperrors.PublicMessage(err))
		})
	}
}

func TestLLMGeneratorRejectsEmptyPantryWithoutCalling(t *testing.T) {
	var calls int32
	srv := chatServer(t, http.StatusOK, `{"recipes": []}`, &calls)
	g := NewLLMGenerator(LLMConfig{APIKey: "test-key", APIURL: srv.URL}, nil)

	_, err := g.Generate(context.Background(), []string{}, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNewGenerator(t *testing.T) {
	for provider, want := range map[string]interface{}{
		"stub":    &StubGenerator{},
		"catalog": &CatalogGenerator{},
		"llm":     &LLMGenerator{},
	} {
		g, err := NewGenerator(&config.Config{GeneratorProvider: provider, LLMAPIKey: "k"}, nil)
		require.NoError(t, err)
		assert.IsType(t, want, g)
	}

	_, err := NewGenerator(&config.Config{GeneratorProvider: "oracle"}, nil)
	assert.Error(t, err)
}
