package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sind14/Gastronomy-Service/internal/auth/token"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type mockUserRepository struct {
	InsertFunc         func(ctx context.Context, u domain.User) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FindAllFunc        func(ctx context.Context) ([]domain.User, error)
	UpdateFunc         func(ctx context.Context, u domain.User) error
	DeleteFunc         func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Insert(ctx context.Context, u domain.User) (*domain.User, error) {
	return m.InsertFunc(ctx, u)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockUserRepository) Update(ctx context.Context, u domain.User) error {
	return m.UpdateFunc(ctx, u)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func newTestAuthService(users UserRepository) *AuthService {
	tokens := token.NewService("test-secret", 15*time.Minute, time.Hour)
	return NewAuthService(users, tokens, zap.NewNop())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_HashesPassword(t *testing.T) {
	var inserted domain.User
	users := &mockUserRepository{
		InsertFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
			inserted = u
			u.ID = 1
			return &u, nil
		},
	}
	svc := newTestAuthService(users)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "chef",
		Email:    "chef@example.com",
		Password: "kitchen-secret",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "kitchen-secret", inserted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.PasswordHash), []byte("kitchen-secret")))
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "chef",
		Email:    "chef@example.com",
		Password: "abc",
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestRegister_RejectsBadEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "chef",
		Email:    "not-an-email",
		Password: "kitchen-secret",
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Details[0].Field)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	users := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hashPassword(t, "kitchen-secret")}, nil
		},
	}
	svc := newTestAuthService(users)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chef", Password: "kitchen-secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	users := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hashPassword(t, "kitchen-secret")}, nil
		},
	}
	svc := newTestAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chef", Password: "wrong"})

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestLogin_UnknownUserUnauthorized(t *testing.T) {
	users := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("user not found")
		},
	}
	svc := newTestAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})

	// unknown user and wrong password must be indistinguishable
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestRefresh_MintsNewPair(t *testing.T) {
	user := domain.User{ID: 1, Username: "chef"}
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			require.Equal(t, uint(1), id)
			return &user, nil
		},
	}
	tokens := token.NewService("test-secret", 15*time.Minute, time.Hour)
	svc := NewAuthService(users, tokens, zap.NewNop())

	refresh, err := tokens.GenerateRefreshToken(user)
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	tokens := token.NewService("test-secret", 15*time.Minute, time.Hour)
	svc := NewAuthService(&mockUserRepository{}, tokens, zap.NewNop())

	access, err := tokens.GenerateAccessToken(domain.User{ID: 1, Username: "chef"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestUpdateUser_KeepsHashWithoutPassword(t *testing.T) {
	originalHash := hashPassword(t, "kitchen-secret")
	var updated domain.User
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Username: "chef", Email: "chef@example.com", PasswordHash: originalHash}, nil
		},
		UpdateFunc: func(ctx context.Context, u domain.User) error {
			updated = u
			return nil
		},
	}
	svc := newTestAuthService(users)

	_, err := svc.UpdateUser(context.Background(), 1, dto.UserRequest{
		Username: "headchef",
		Email:    "head@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "headchef", updated.Username)
	assert.Equal(t, originalHash, updated.PasswordHash)
}

func TestUpdateUser_RehashesNewPassword(t *testing.T) {
	newPassword := "brand-new-pass"
	var updated domain.User
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Username: "chef", Email: "chef@example.com", PasswordHash: hashPassword(t, "old")}, nil
		},
		UpdateFunc: func(ctx context.Context, u domain.User) error {
			updated = u
			return nil
		},
	}
	svc := newTestAuthService(users)

	_, err := svc.UpdateUser(context.Background(), 1, dto.UserRequest{
		Username: "chef",
		Email:    "chef@example.com",
		Password: &newPassword,
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))
}
