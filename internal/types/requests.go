package types

import "time"

// GenerateRecipesRequest is the body of POST /api/recipes/generate.
// Ingredients are checked by the handler so an empty list gets its own message.
type GenerateRecipesRequest struct {
	Ingredients []string `json:"ingredients"`
	Preferences []string `json:"preferences" binding:"omitempty,dive,dietary_preference"`
}

// SaveRecipeRequest is the body of POST /api/recipes/save
type SaveRecipeRequest struct {
	RecipeID    FlexibleID `json:"recipeId"`
	UserID      FlexibleID `json:"userId"`
	RecipeTitle string     `json:"recipeTitle"`
}

// SaveRecipeResponse acknowledges a saved recipe
type SaveRecipeResponse struct {
	Message string `json:"message"`
	Saved   bool   `json:"saved"`
}

// RegisterRequest is the body of POST /api/users/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}
