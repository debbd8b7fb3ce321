package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// Service issues and validates stateless signed tokens. Access tokens are
// short-lived; refresh tokens only serve to mint new pairs.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *Service) GenerateAccessToken(user domain.User) (string, error) {
	return s.generate(user, TypeAccess, s.accessTTL)
}

func (s *Service) GenerateRefreshToken(user domain.User) (string, error) {
	return s.generate(user, TypeRefresh, s.refreshTTL)
}

func (s *Service) generate(user domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses the token and checks the signature, expiry and expected
// type. Any failure maps to an unauthorized error.
func (s *Service) Validate(tokenString, expectedType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Type != expectedType {
		return nil, apperrors.NewUnauthorizedError("invalid token type")
	}
	return claims, nil
}
