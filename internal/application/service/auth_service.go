package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/oauth"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, google *oauth.GoogleOAuthService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		google:     google,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a new user account. The first registered user
// becomes the owner; later accounts default to cashier.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entity.RoleCashier
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		role = entity.RoleOwner
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: hashedPassword,
		Role:     role,
		Provider: "local",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// GoogleAuthURL returns the Google consent URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.google.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.google.GetAuthURL(state), nil
}

// GoogleLogin exchanges the OAuth code, finds or creates the matching
// user and returns tokens. Existing local accounts are linked by email.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.google.IsConfigured() {
		return nil, oauth.ErrOAuthNotConfigured
	}

	info, err := s.google.FetchUser(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Name:       info.Name,
			Email:      strings.ToLower(info.Email),
			Role:       entity.RoleCashier,
			Provider:   "google",
			ProviderID: &info.ID,
		}
		if info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.ProviderID == nil {
		user.Provider = "google"
		user.ProviderID = &info.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

// GoogleFrontendSuccessURL returns the frontend redirect target after a
// successful Google sign-in
func (s *AuthService) GoogleFrontendSuccessURL() string {
	return s.google.GetFrontendSuccessURL()
}

// GoogleFrontendErrorURL returns the frontend redirect target after a
// failed Google sign-in
func (s *AuthService) GoogleFrontendErrorURL() string {
	return s.google.GetFrontendErrorURL()
}
