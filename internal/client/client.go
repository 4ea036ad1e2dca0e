// Package client is a typed HTTP client for the Budget-Chef API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/types"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsConflict reports a 409, such as saving a recipe twice
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsNotFound reports a 404
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 90 seconds
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends the token as a Bearer credential on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the Bearer credential, e.g. after Login
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Generate asks the server for recipes matching the pantry
func (c *Client) Generate(ctx context.Context, ingredients, preferences []string) ([]types.RecipeSummary, error) {
	if preferences == nil {
		preferences = []string{}
	}
	var recipes []types.RecipeSummary
	err := c.do(ctx, http.MethodPost, "/api/recipes/generate", types.GenerateRecipesRequest{
		Ingredients: ingredients,
		Preferences: preferences,
	}, &recipes)
	return recipes, err
}

// Recipe fetches one recipe, flagging the ingredients found in pantry
func (c *Client) Recipe(ctx context.Context, id string, pantry []string) (*types.RecipeDetail, error) {
	path := "/api/recipes/" + url.PathEscape(id)
	if len(pantry) > 0 {
		path += "?" + url.Values{"pantry": {strings.Join(pantry, ",")}}.Encode()
	}
	var detail types.RecipeDetail
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) Save(ctx context.Context, userID, recipeID, title string) (*types.SaveRecipeResponse, error) {
	var resp types.SaveRecipeResponse
	err := c.do(ctx, http.MethodPost, "/api/recipes/save", types.SaveRecipeRequest{
		RecipeID:    types.FlexibleID(recipeID),
		UserID:      types.FlexibleID(userID),
		RecipeTitle: title,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Saved(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	var saved []models.SavedRecipe
	err := c.do(ctx, http.MethodGet, "/api/recipes/saved/"+url.PathEscape(userID), nil, &saved)
	return saved, err
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/users/register", types.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and keeps the issued token for later calls
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/users/login", types.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*types.UserResponse, error) {
	var resp struct {
		User types.UserResponse `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
