package dto

import "github.com/sind14/Gastronomy-Service/internal/domain"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access"`
}

// UserRequest is the write shape for user updates; the password is
// optional and write-only, is_staff is read-only.
type UserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, IsStaff: u.IsStaff}
}
