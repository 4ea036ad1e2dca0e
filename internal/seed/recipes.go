// Package seed ships the starter recipe corpus used by the catalog generator.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
)

type line struct {
	name, quantity string
}

func recipe(id, title, prep, cost string, tags []string, lines []line, steps ...string) models.Recipe {
	ingredients := make([]models.RecipeIngredient, len(lines))
	for i, l := range lines {
		ingredients[i] = models.RecipeIngredient{
			RecipeID:       id,
			IngredientName: l.name,
			Quantity:       l.quantity,
			Position:       i,
		}
	}
	return models.Recipe{
		ID:                 id,
		Title:              title,
		TotalPrepTime:      prep,
		TotalEstimatedCost: decimal.RequireFromString(cost),
		DietaryTags:        tags,
		Instructions:       steps,
		Ingredients:        ingredients,
	}
}

// Recipes returns a fresh copy of the starter corpus.
func Recipes() []models.Recipe {
	return []models.Recipe{
		recipe("101", "Quick Pasta with Pesto & Cherry Tomatoes", "15 min", "3.85",
			[]string{"Vegetarian"},
			[]line{
				{"spaghetti", "300g"},
				{"pesto sauce", "100g"},
				{"cherry tomatoes", "1 cup"},
				{"parmesan cheese", "2 tbsp"},
				{"garlic", "2 cloves"},
			},
			"Boil water in a large pot and cook spaghetti according to package directions.",
			"While pasta cooks, halve the cherry tomatoes and mince the garlic.",
			"Drain the pasta, reserving 1/4 cup of the pasta water.",
			"Return the pasta to the pot. Stir in the pesto, tomatoes, and garlic.",
			"Add a little reserved pasta water until the sauce reaches your desired consistency. Serve immediately, topped with Parmesan.",
		),
		recipe("1", "Quick Peanut Noodles", "15 min", "4.20",
			[]string{"Vegetarian", "Vegan", "Dairy-Free"},
			[]line{
				{"noodles", "250g"},
				{"peanut butter", "3 tbsp"},
				{"soy sauce", "2 tbsp"},
				{"garlic", "1 clove"},
				{"green onion", "2 stalks"},
			},
			"Cook the noodles and drain.",
			"Whisk peanut butter, soy sauce, minced garlic and a splash of hot water.",
			"Toss the noodles in the sauce and top with sliced green onion.",
		),
		recipe("2", "Chicken and Rice Skillet", "35 min", "7.10",
			[]string{"Gluten-Free", "Dairy-Free"},
			[]line{
				{"chicken thighs", "500g"},
				{"rice", "1 cup"},
				{"onion", "1"},
				{"chicken broth", "2 cups"},
				{"soy sauce", "1 tbsp"},
			},
			"Brown the chicken in a deep skillet and set aside.",
			"Soften the diced onion, then stir in the rice until glossy.",
			"Add broth and soy sauce, return the chicken, cover and simmer for 20 minutes.",
		),
		recipe("3", "Lentil Soup", "50 min", "3.40",
			[]string{"Vegetarian", "Vegan", "Gluten-Free", "Dairy-Free"},
			[]line{
				{"lentils", "1 cup"},
				{"carrots", "2"},
				{"onion", "1"},
				{"vegetable broth", "4 cups"},
				{"cumin", "1 tsp"},
			},
			"Sweat the onion and carrots in a pot.",
			"Add lentils, cumin and broth and bring to a boil.",
			"Simmer for 35 minutes until the lentils are soft. Season and serve.",
		),
		recipe("4", "Black Bean Tacos", "20 min", "5.00",
			[]string{"Vegetarian", "Vegan", "Dairy-Free"},
			[]line{
				{"black beans", "1 can"},
				{"corn tortillas", "8"},
				{"onion", "1/2"},
				{"lime", "1"},
				{"salsa", "1/2 cup"},
			},
			"Warm the beans with the chopped onion and a squeeze of lime.",
			"Heat the tortillas in a dry pan.",
			"Fill the tortillas with beans and top with salsa.",
		),
		recipe("5", "Egg Fried Rice", "20 min", "2.90",
			[]string{"Vegetarian", "Dairy-Free"},
			[]line{
				{"rice", "2 cups cooked"},
				{"eggs", "2"},
				{"frozen peas", "1/2 cup"},
				{"soy sauce", "2 tbsp"},
				{"green onion", "2 stalks"},
			},
			"Scramble the eggs in a hot wok and set aside.",
			"Fry the rice and peas until hot.",
			"Return the eggs, add soy sauce and green onion and toss.",
		),
		recipe("6", "Keto Chicken Salad", "15 min", "6.30",
			[]string{"Keto", "Low-Carb", "Gluten-Free"},
			[]line{
				{"chicken breast", "2"},
				{"mayonnaise", "3 tbsp"},
				{"celery", "2 stalks"},
				{"lettuce", "1 head"},
			},
			"Poach the chicken breast and shred it.",
			"Mix with mayonnaise and diced celery.",
			"Serve over lettuce leaves.",
		),
	}
}

// Apply writes the corpus through repo. With replace set, each recipe is deleted first.
func Apply(ctx context.Context, repo repository.RecipeRepository, replace bool) (int, error) {
	recipes := Recipes()
	for i := range recipes {
		r := &recipes[i]
		if replace {
			if err := repo.Delete(ctx, r.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return i, fmt.Errorf("failed to delete recipe %s: %w", r.ID, err)
			}
		}
		if err := repo.Upsert(ctx, r); err != nil {
			return i, err
		}
	}
	return len(recipes), nil
}
