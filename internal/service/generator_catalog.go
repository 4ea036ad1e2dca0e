package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// CatalogGenerator matches the pantry against the stored recipe corpus.
// A recipe qualifies when it carries every requested dietary tag and the pantry
// covers at least one of its ingredients. Results keep corpus (title) order.
type CatalogGenerator struct {
	recipes repository.RecipeRepository
	log     *zap.Logger
}

func NewCatalogGenerator(recipes repository.RecipeRepository) *CatalogGenerator {
	return &CatalogGenerator{
		recipes: recipes,
		log:     logger.Named("catalog_generator"),
	}
}

func (g *CatalogGenerator) Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error) {
	ings, prefs, err := normalizeGenerateInput(ingredients, preferences)
	if err != nil {
		return nil, err
	}

	corpus, err := g.recipes.ListWithIngredients(ctx)
	if err != nil {
		g.log.Error("failed to load recipe corpus", zap.Error(err))
		return nil, generationFailed(err)
	}

	pantry := NewPantry(ings)
	results := make([]types.RecipeSummary, 0)
	for _, recipe := range corpus {
		if !hasAllTags(recipe.DietaryTags, prefs) {
			continue
		}
		summary := summarize(recipe, pantry)
		if summary.MissingItemsCount == len(recipe.Ingredients) {
			continue
		}
		results = append(results, summary)
	}

	g.log.Debug("matched recipes",
		zap.Strings("ingredients", ings),
		zap.Strings("preferences", prefs),
		zap.Int("corpus", len(corpus)),
		zap.Int("matches", len(results)),
	)
	return results, nil
}
