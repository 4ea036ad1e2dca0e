package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/types"
)

const llmSystemPrompt = `You are a budget-conscious home cook. Suggest up to 3 cheap recipes that mainly use the ingredients the user already has.
Respond with JSON only, using this structure:
{
    "recipes": [
        {
            "title": "Recipe name",
            "total_prep_time": "25 min",
            "estimated_cost": 6.25,
            "dietary_tags": ["Vegetarian"],
            "ingredients": [
                {"name": "spaghetti", "quantity": "300g"}
            ],
            "instructions": [
                "Boil water in a large pot."
            ]
        }
    ]
}

estimated_cost is the total cost in US dollars as a number.
dietary_tags may only use: Vegetarian, Vegan, Gluten-Free, Dairy-Free, Keto, Low-Carb.
Ingredient names are lowercase and never include quantities.`

// LLMConfig configures an OpenAI-compatible chat completions endpoint
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a chat completions request
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// costValue accepts 6.25, "6.25" or "$6.25"
type costValue struct {
	decimal.Decimal
}

func (c *costValue) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		d, err := decimal.NewFromString(num.String())
		if err != nil {
			return err
		}
		c.Decimal = d
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid cost format: %s", data)
	}
	str = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(str), "$"))
	if str == "" {
		c.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return fmt.Errorf("invalid cost format: %s", data)
	}
	c.Decimal = d
	return nil
}

type generatedRecipe struct {
	Title         string    `json:"title"`
	TotalPrepTime string    `json:"total_prep_time"`
	EstimatedCost costValue `json:"estimated_cost"`
	DietaryTags   []string  `json:"dietary_tags"`
	Ingredients   []struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// LLMGenerator asks a chat completions API for recipes and stores what it returns,
// so the generated ids resolve through the recipe detail endpoint.
type LLMGenerator struct {
	cfg     LLMConfig
	client  *http.Client
	recipes repository.RecipeRepository
	log     *zap.Logger
}

// NewLLMGenerator creates a generator. recipes may be nil, in which case results are not persisted.
func NewLLMGenerator(cfg LLMConfig, recipes repository.RecipeRepository) *LLMGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	return &LLMGenerator{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		recipes: recipes,
		log:     logger.Named("llm_generator"),
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error) {
	ings, prefs, err := normalizeGenerateInput(ingredients, preferences)
	if err != nil {
		return nil, err
	}

	content, err := g.complete(ctx, buildPrompt(ings, prefs))
	if err != nil {
		g.log.Error("chat completion failed", zap.Error(err))
		return nil, generationFailed(err)
	}

	var parsed struct {
		Recipes []generatedRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		g.log.Error("unparsable completion", zap.Error(err), zap.String("content", content))
		return nil, generationFailed(fmt.Errorf("failed to decode recipes: %w", err))
	}

	pantry := NewPantry(ings)
	results := make([]types.RecipeSummary, 0, len(parsed.Recipes))
	for _, gen := range parsed.Recipes {
		recipe, ok := toRecipe(gen)
		if !ok {
			continue
		}
		if g.recipes != nil {
			if err := g.recipes.Create(ctx, &recipe); err != nil {
				g.log.Error("failed to store generated recipe", zap.String("recipe_id", recipe.ID), zap.Error(err))
				return nil, generationFailed(err)
			}
		}
		results = append(results, summarize(recipe, pantry))
	}

	return results, nil
}

func buildPrompt(ingredients, preferences []string) string {
	prompt := "Ingredients I have: " + strings.Join(ingredients, ", ") + "."
	if len(preferences) > 0 {
		prompt += " Every recipe must be: " + strings.Join(preferences, ", ") + "."
	}
	return prompt
}

// toRecipe converts a generated recipe, dropping entries without a title or ingredients
func toRecipe(gen generatedRecipe) (models.Recipe, bool) {
	title := strings.TrimSpace(gen.Title)
	if title == "" || len(gen.Ingredients) == 0 {
		return models.Recipe{}, false
	}

	id := uuid.NewString()
	lines := make([]models.RecipeIngredient, 0, len(gen.Ingredients))
	for _, ing := range gen.Ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" {
			continue
		}
		lines = append(lines, models.RecipeIngredient{
			RecipeID:       id,
			IngredientName: name,
			Quantity:       strings.TrimSpace(ing.Quantity),
			Position:       len(lines),
		})
	}
	if len(lines) == 0 {
		return models.Recipe{}, false
	}

	return models.Recipe{
		ID:                 id,
		Title:              title,
		TotalPrepTime:      strings.TrimSpace(gen.TotalPrepTime),
		TotalEstimatedCost: gen.EstimatedCost.Round(2),
		DietaryTags:        types.CanonicalPreferences(gen.DietaryTags),
		Instructions:       gen.Instructions,
		Ingredients:        lines,
	}, true
}

// complete sends one chat completion request and returns the first choice's content
func (g *LLMGenerator) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: g.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
