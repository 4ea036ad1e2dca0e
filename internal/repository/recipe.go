package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/budget-chef/backend/internal/models"
)

// RecipeRepository defines recipe data access.
type RecipeRepository interface {
	FindByID(ctx context.Context, id string) (*models.Recipe, error)
	ListWithIngredients(ctx context.Context) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Upsert(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id string) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *recipeRepository) FindByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// ListWithIngredients returns the whole corpus ordered by title.
func (r *recipeRepository) ListWithIngredients(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		Order("title ASC, id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return translate(r.db.WithContext(ctx).Create(recipe).Error)
}

// Upsert writes the recipe row and replaces its ingredient lines.
func (r *recipeRepository) Upsert(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to upsert recipe %s: %w", recipe.ID, err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredients of %s: %w", recipe.ID, err)
		}

		if len(recipe.Ingredients) == 0 {
			return nil
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&recipe.Ingredients).Error; err != nil {
			return fmt.Errorf("failed to insert ingredients of %s: %w", recipe.ID, err)
		}
		return nil
	})
}

// Delete removes a recipe and its ingredient lines. Saved recipes referencing it are kept.
func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
