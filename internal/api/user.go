package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/middleware"
	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/service"
	"github.com/pageza/budget-chef/backend/internal/types"
)

type UserHandler struct {
	auth service.IAuthService
}

func NewUserHandler(auth service.IAuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) RegisterRoutes(users *gin.RouterGroup) {
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/me", middleware.AuthMiddleware(h.auth), h.Me)
}

func toUserResponse(user *models.User) *types.UserResponse {
	return &types.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// Register creates an account
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput(validationMessage(err)))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{
		Success: true,
		Message: "User registered successfully!",
		User:    toUserResponse(user),
	})
}

// Login checks credentials and issues a token
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput(validationMessage(err)))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Me returns the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
