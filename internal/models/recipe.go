package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StringList stores a string slice as a JSON array in a text column
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Recipe is a stored recipe. Saved recipes reference it by ID without a foreign key,
// so deleting a recipe leaves saved rows in place with their title snapshot.
type Recipe struct {
	ID                 string             `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title              string             `gorm:"size:255;not null" json:"title"`
	TotalPrepTime      string             `gorm:"size:50" json:"total_prep_time"`
	TotalEstimatedCost decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"total_estimated_cost"`
	Instructions       StringList         `gorm:"type:text" json:"instructions"`
	DietaryTags        StringList         `gorm:"type:text" json:"dietary_tags"`
	ImageKey           string             `gorm:"size:255" json:"image_key,omitempty"`
	Ingredients        []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one ingredient line of a recipe
type RecipeIngredient struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	RecipeID       string `gorm:"type:varchar(64);not null;index" json:"recipe_id"`
	IngredientName string `gorm:"column:ingredient_name;size:255;not null" json:"ingredient_name"`
	Quantity       string `gorm:"size:100" json:"quantity"`
	Position       int    `gorm:"not null;default:0" json:"position"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
