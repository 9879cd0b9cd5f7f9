package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/dto"
	apierrors "github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/internal/utils"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

type AuthHandler struct {
	authService    *services.AuthService
	jwtExpireHours int
}

func NewAuthHandler(authService *services.AuthService, jwtExpireHours int) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		jwtExpireHours: jwtExpireHours,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  dto.UserDTO `json:"user"`
}

// Register creates a new user account and returns a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, h.jwtExpireHours)
	if err != nil {
		logger.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to generate token")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusCreated, "User registered successfully", authResponse{
		Token: token,
		User:  dto.ToUserDetailDTO(*user),
	})
}

// Login verifies credentials and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, h.jwtExpireHours)
	if err != nil {
		logger.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to generate token")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Logged in successfully", authResponse{
		Token: token,
		User:  dto.ToUserDetailDTO(*user),
	})
}

// Logout acknowledges a logout. Tokens are stateless, so the client discards
// its copy; nothing is revoked server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	apierrors.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(middleware.GetUserID(c))
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "User fetched successfully", dto.ToUserDetailDTO(*user))
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrNameRequired):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		logger.Error().Err(err).Msg("auth request failed")
		apierrors.InternalError(c, "")
	}
}
