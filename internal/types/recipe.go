package types

// RecipeSummary is one candidate returned by recipe generation
type RecipeSummary struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	TotalPrepTime     string   `json:"total_prep_time"`
	EstimatedCost     float64  `json:"estimated_cost"`
	CostEfficiency    float64  `json:"cost_efficiency"`
	DietaryTags       []string `json:"dietary_tags"`
	MissingItems      []string `json:"missing_items"`
	MissingItemsCount int      `json:"missing_items_count"`
}

// IngredientLine is a recipe ingredient as seen by one caller.
// IsPantry is computed against the caller's pantry and never stored.
type IngredientLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	IsPantry bool   `json:"is_pantry"`
}

// RecipeDetail is the full view of a stored recipe
type RecipeDetail struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	TotalPrepTime      string           `json:"total_prep_time"`
	TotalEstimatedCost float64          `json:"total_estimated_cost"`
	Instructions       []string         `json:"instructions"`
	Ingredients        []IngredientLine `json:"ingredients"`
	DietaryTags        []string         `json:"dietary_tags"`
	ImageURL           string           `json:"image_url,omitempty"`
}

