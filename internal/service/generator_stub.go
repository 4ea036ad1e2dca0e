package service

import (
	"context"
	"fmt"

	"github.com/pageza/budget-chef/backend/internal/types"
)

// StubGenerator returns two templated recipes built from the first ingredient and preference.
type StubGenerator struct{}

func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

func (g *StubGenerator) Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error) {
	ings, prefs, err := normalizeGenerateInput(ingredients, preferences)
	if err != nil {
		return nil, err
	}

	pref := "Default"
	tags := []string{}
	if len(prefs) > 0 {
		pref = prefs[0]
		tags = prefs
	}

	return []types.RecipeSummary{
		{
			ID:             "AI_REC_1",
			Title:          fmt.Sprintf("AI Recipe: Quick %s Dish", capitalize(ings[0])),
			TotalPrepTime:  "25 min",
			EstimatedCost:  6.25,
			CostEfficiency: 0.95,
			DietaryTags:    tags,
			MissingItems:   []string{},
		},
		{
			ID:                "AI_REC_2",
			Title:             fmt.Sprintf("AI Recipe: %s Budget Meal", pref),
			TotalPrepTime:     "15 min",
			EstimatedCost:     4.00,
			CostEfficiency:    0.88,
			DietaryTags:       []string{"Budget"},
			MissingItems:      []string{"salt"},
			MissingItemsCount: 1,
		},
	}, nil
}
