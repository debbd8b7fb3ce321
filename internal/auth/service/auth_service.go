package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sind14/Gastronomy-Service/internal/auth/token"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	"github.com/sind14/Gastronomy-Service/internal/errors"
)

const minPasswordLength = 5

type UserRepository interface {
	Insert(ctx context.Context, u domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, id uint) error
}

type TokenService interface {
	GenerateAccessToken(user domain.User) (string, error)
	GenerateRefreshToken(user domain.User) (string, error)
	Validate(tokenString, expectedType string) (*token.Claims, error)
}

// AuthService handles registration, credential checks, token refresh and
// user management. Passwords are stored as bcrypt hashes only.
type AuthService struct {
	users  UserRepository
	tokens TokenService
	logger *zap.Logger
}

func NewAuthService(users UserRepository, tokens TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if err := validateCredentials(req.Username, req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, passwordTooShortError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Insert(ctx, domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("userId", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies the credentials and issues an access/refresh pair. Bad
// username and bad password are indistinguishable in the response.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	return s.issuePair(*user)
}

// Refresh validates a refresh token and mints a fresh pair for the user
// it names.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	claims, err := s.tokens.Validate(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewUnauthorizedError("invalid token")
		}
		return nil, err
	}

	return s.issuePair(*user)
}

func (s *AuthService) issuePair(user domain.User) (*dto.TokenPairResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateUser changes username and email, and the password when one is
// supplied. The staff flag is not writable through the API.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, req dto.UserRequest) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateCredentials(req.Username, req.Email); err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email

	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, passwordTooShortError()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

func validateCredentials(username, email string) error {
	var details []errors.ValidationDetail

	if username == "" {
		details = append(details, errors.ValidationDetail{Field: "username", Message: "username must not be empty"})
	}
	if email == "" || !strings.Contains(email, "@") {
		details = append(details, errors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}
	return nil
}

func passwordTooShortError() error {
	return errors.NewValidationError("password too short", errors.ValidationDetail{
		Field:   "password",
		Message: "password must be at least 5 characters",
	})
}
