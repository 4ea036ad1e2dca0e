package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// ErrGenerationFailed marks a recipe generator that could not produce a result.
var ErrGenerationFailed = errors.New("recipe generation failed")

const msgGenerationFailed = "Failed to generate recipes due to a server error."

// NewGenerator returns the generator selected by cfg.GeneratorProvider
func NewGenerator(cfg *config.Config, recipes repository.RecipeRepository) (RecipeGenerator, error) {
	switch cfg.GeneratorProvider {
	case "stub":
		return NewStubGenerator(), nil
	case "catalog":
		return NewCatalogGenerator(recipes), nil
	case "llm":
		return NewLLMGenerator(LLMConfig{
			APIKey:  cfg.LLMAPIKey,
			APIURL:  cfg.LLMAPIURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		}, recipes), nil
	default:
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.GeneratorProvider)
	}
}

// generationFailed wraps cause so callers can match both the app error kind and ErrGenerationFailed
func generationFailed(cause error) error {
	return apperrors.Upstream(msgGenerationFailed, fmt.Errorf("%w: %v", ErrGenerationFailed, cause))
}

// normalizeGenerateInput validates generator input and canonicalizes both lists
func normalizeGenerateInput(ingredients, preferences []string) ([]string, []string, error) {
	ings := NormalizeIngredients(ingredients)
	if len(ings) == 0 {
		return nil, nil, apperrors.InvalidInput("No ingredients provided to generate recipes.")
	}
	return ings, types.CanonicalPreferences(preferences), nil
}

// summarize describes a stored recipe relative to the pantry
func summarize(recipe models.Recipe, pantry Pantry) types.RecipeSummary {
	missing := make([]string, 0)
	covered := 0
	for _, ing := range recipe.Ingredients {
		if pantry.Covers(ing.IngredientName) {
			covered++
		} else {
			missing = append(missing, ing.IngredientName)
		}
	}

	efficiency := 0.0
	if len(recipe.Ingredients) > 0 {
		efficiency = math.Round(float64(covered)/float64(len(recipe.Ingredients))*100) / 100
	}

	tags := []string(recipe.DietaryTags)
	if tags == nil {
		tags = []string{}
	}

	return types.RecipeSummary{
		ID:                recipe.ID,
		Title:             recipe.Title,
		TotalPrepTime:     recipe.TotalPrepTime,
		EstimatedCost:     recipe.TotalEstimatedCost.Round(2).InexactFloat64(),
		CostEfficiency:    efficiency,
		DietaryTags:       tags,
		MissingItems:      missing,
		MissingItemsCount: len(missing),
	}
}

// hasAllTags reports whether tags contains every preference, ignoring case
func hasAllTags(tags []string, preferences []string) bool {
	for _, pref := range preferences {
		found := false
		for _, tag := range tags {
			if strings.EqualFold(strings.TrimSpace(tag), pref) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
