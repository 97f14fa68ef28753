package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/request"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
// @Summary Login
// @Description Authenticate user and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Register handles user registration
// @Summary Register
// @Description Create a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful", gin.H{
		"user": user,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// GetProfile returns the authenticated user
// @Summary Get profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"user": user,
	})
}

// GoogleAuthURL returns the Google consent URL the frontend should open
// @Summary Google auth URL
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/google/url [get]
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		state = utils.NewUUID().String()
	}

	url, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Google auth URL generated", gin.H{
		"url":   url,
		"state": state,
	})
}

// GoogleCallback exchanges the OAuth code for a token pair
// @Summary Google callback
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/google/callback [post]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.GoogleLogin(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// GoogleRedirect handles the browser redirect from Google's consent
// screen, exchanging the code server-side and bouncing the tokens to
// the configured frontend URL.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	output, err := h.authService.GoogleLogin(c.Request.Context(), code)
	if err != nil {
		errorURL := h.authService.GoogleFrontendErrorURL()
		if errorURL != "" {
			c.Redirect(http.StatusTemporaryRedirect, errorURL)
			return
		}
		response.Error(c, err)
		return
	}

	successURL := h.authService.GoogleFrontendSuccessURL()
	if successURL == "" {
		response.OK(c, "Login successful", gin.H{
			"access_token":  output.AccessToken,
			"refresh_token": output.RefreshToken,
		})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect,
		successURL+"?access_token="+output.AccessToken+"&refresh_token="+output.RefreshToken)
}
