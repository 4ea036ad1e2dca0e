package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/mocks"
	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/service"
	"github.com/pageza/budget-chef/backend/internal/types"
)

func TestGenerateRecipes_EmptyIngredients(t *testing.T) {
	gen := new(mocks.MockRecipeGenerator)
	router := SetupTestRouter(t, Dependencies{Generator: gen})

	for _, body := range []interface{}{
		map[string]interface{}{"ingredients": []string{}, "preferences": []string{}},
		map[string]interface{}{"ingredients": []string{"  ", ""}},
		"",
	} {
		w := PerformRequest(router, http.MethodPost, "/api/recipes/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No ingredients provided to generate recipes."}`, w.Body.String())
	}

	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateRecipes_UnknownPreference(t *testing.T) {
	gen := new(mocks.MockRecipeGenerator)
	router := SetupTestRouter(t, Dependencies{Generator: gen})

	w := PerformRequest(router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
		"ingredients": []string{"chicken"},
		"preferences": []string{"Carnivore"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown dietary preference")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateRecipes_CanonicalizesPreferences(t *testing.T) {
	gen := new(mocks.MockRecipeGenerator)
	gen.On("Generate", mock.Anything, []string{"chicken"}, []string{"Gluten-Free"}).
		Return([]types.RecipeSummary{{ID: "2", Title: "Chicken and Rice Skillet"}}, nil)
	router := SetupTestRouter(t, Dependencies{Generator: gen})

	w := PerformRequest(router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
		"ingredients": []string{"chicken"},
		"preferences": []string{"gluten-free", "Gluten-Free"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	gen.AssertExpectations(t)
}

func TestGenerateRecipes_ReturnsTitles(t *testing.T) {
	deps, _ := testDependencies(t)

	for name, gen := range map[string]service.RecipeGenerator{
		"catalog": deps.Generator,
		"stub":    service.NewStubGenerator(),
	} {
		t.Run(name, func(t *testing.T) {
			deps.Generator = gen
			router := SetupTestRouter(t, deps)

			w := PerformRequest(router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
				"ingredients": []string{"chicken"},
				"preferences": []string{},
			})
			require.Equal(t, http.StatusOK, w.Code)

			var recipes []types.RecipeSummary
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
			require.NotEmpty(t, recipes)
			for _, r := range recipes {
				assert.NotEmpty(t, r.Title)
				assert.Equal(t, len(r.MissingItems), r.MissingItemsCount)
			}
		})
	}
}

func TestGenerateRecipes_GeneratorFailure(t *testing.T) {
	gen := new(mocks.MockRecipeGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Upstream("Failed to generate recipes due to a server error.", service.ErrGenerationFailed))
	router := SetupTestRouter(t, Dependencies{Generator: gen})

	w := PerformRequest(router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
		"ingredients": []string{"chicken"},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate recipes due to a server error."}`, w.Body.String())
}

func TestGetRecipe_NotFound(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	w := PerformRequest(router, http.MethodGet, "/api/recipes/does-not-exist", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Recipe not found."}`, w.Body.String())
}

func TestGetRecipe_PantryFlags(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	w := PerformRequest(router, http.MethodGet, "/api/recipes/101?pantry=spaghetti,tomatoes&pantry=garlic", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail types.RecipeDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Quick Pasta with Pesto & Cherry Tomatoes", detail.Title)
	assert.Equal(t, 3.85, detail.TotalEstimatedCost)
	assert.NotEmpty(t, detail.Instructions)

	flags := map[string]bool{}
	for _, ing := range detail.Ingredients {
		flags[ing.Name] = ing.IsPantry
	}
	assert.True(t, flags["spaghetti"])
	assert.True(t, flags["cherry tomatoes"])
	assert.True(t, flags["garlic"])
	assert.False(t, flags["pesto sauce"])
	assert.False(t, flags["parmesan cheese"])

	// no pantry, nothing flagged
	w = PerformRequest(router, http.MethodGet, "/api/recipes/101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	for _, ing := range detail.Ingredients {
		assert.False(t, ing.IsPantry, ing.Name)
	}
}

func TestGetRecipe_ServiceFailure(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("GetRecipeDetail", mock.Anything, "101", []string(nil)).
		Return(nil, apperrors.Storage("Failed to fetch recipe details.", errors.New("connection reset")))
	router := SetupTestRouter(t, Dependencies{Recipes: recipes})

	w := PerformRequest(router, http.MethodGet, "/api/recipes/101", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch recipe details."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestSaveRecipe_DuplicateIsConflict(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	// numeric ids, as sent by the web client
	body := `{"recipeId": 101, "userId": 1, "recipeTitle": "Quick Pasta with Pesto & Cherry Tomatoes"}`

	w := PerformRequest(router, http.MethodPost, "/api/recipes/save", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Recipe saved successfully!","saved":true}`, w.Body.String())

	w = PerformRequest(router, http.MethodPost, "/api/recipes/save", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Recipe is already saved by this user."}`, w.Body.String())
}

func TestSaveRecipe_MissingFields(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	for _, body := range []string{
		`{"recipeId": "101"}`,
		`{"userId": "1"}`,
		`{"recipeId": true, "userId": "1"}`,
		`not json`,
	} {
		w := PerformRequest(router, http.MethodPost, "/api/recipes/save", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Missing required fields (recipeId or userId)."}`, w.Body.String(), body)
	}
}

func TestSaveRecipe_StorageFailure(t *testing.T) {
	saved := new(mocks.MockSavedRecipeService)
	saved.On("SaveRecipe", mock.Anything, "1", "101", "Pasta").
		Return(apperrors.Storage("Failed to save recipe.", errors.New("disk full")))
	router := SetupTestRouter(t, Dependencies{SavedRecipes: saved})

	w := PerformRequest(router, http.MethodPost, "/api/recipes/save", `{"recipeId":"101","userId":"1","recipeTitle":"Pasta"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save recipe."}`, w.Body.String())
	saved.AssertExpectations(t)
}

func TestListSavedRecipes_Empty(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	w := PerformRequest(router, http.MethodGet, "/api/recipes/saved/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSaveThenList_RoundTrip(t *testing.T) {
	deps, _ := testDependencies(t)
	router := SetupTestRouter(t, deps)

	w := PerformRequest(router, http.MethodPost, "/api/recipes/save", map[string]string{
		"recipeId":    "2",
		"userId":      "7",
		"recipeTitle": "Chicken and Rice Skillet",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, http.MethodGet, "/api/recipes/saved/7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved []models.SavedRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, "2", saved[0].RecipeID)
	assert.Equal(t, "Chicken and Rice Skillet", saved[0].RecipeTitle)
	assert.Equal(t, "7", saved[0].UserID)

	// other users are unaffected
	w = PerformRequest(router, http.MethodGet, "/api/recipes/saved/8", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListSavedRecipes_Failure(t *testing.T) {
	saved := new(mocks.MockSavedRecipeService)
	saved.On("ListSaved", mock.Anything, "7").
		Return(nil, apperrors.Storage("Failed to retrieve saved recipes.", errors.New("timeout")))
	router := SetupTestRouter(t, Dependencies{SavedRecipes: saved})

	w := PerformRequest(router, http.MethodGet, "/api/recipes/saved/7", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to retrieve saved recipes."}`, w.Body.String())
}
