package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sind14/Gastronomy-Service/internal/commons"
	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/dto"
	apperrors "github.com/sind14/Gastronomy-Service/internal/errors"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, req dto.UserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type AuthController struct {
	service AuthService
	logger  *zap.Logger
}

func NewAuthController(service AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{service: service, logger: logger}
}

func (c *AuthController) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		commons.WriteValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !c.decode(w, r, &req) {
		return
	}

	user, err := c.service.Register(r.Context(), req)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusCreated, dto.NewUserResponse(*user))
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !c.decode(w, r, &req) {
		return
	}

	pair, err := c.service.Login(r.Context(), req)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, pair)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !c.decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		commons.WriteValidationError(c.logger, w, "refresh token is required", apperrors.ValidationDetail{
			Field:   "refresh",
			Message: "refresh must not be empty",
		})
		return
	}

	pair, err := c.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, pair)
}

func (c *AuthController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.ListUsers(r.Context())
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	responses := make([]dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = dto.NewUserResponse(u)
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, responses)
}

func (c *AuthController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	user, err := c.service.GetUser(r.Context(), id)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewUserResponse(*user))
}

func (c *AuthController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	var req dto.UserRequest
	if !c.decode(w, r, &req) {
		return
	}

	user, err := c.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	commons.WriteJSON(c.logger, w, http.StatusOK, dto.NewUserResponse(*user))
}

func (c *AuthController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := commons.ParseIDParam(r, "id")
	if err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	if err := c.service.DeleteUser(r.Context(), id); err != nil {
		commons.WriteError(c.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
