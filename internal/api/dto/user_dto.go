package dto

import (
	"strings"
	"time"

	"github.com/sara-relief/relief-service/internal/domain"
)

// RegisterRequest payload for self-registration.
type RegisterRequest struct {
	Username string      `json:"username" form:"username" validate:"required,notblank,min=3,max=50"`
	Email    string      `json:"email" form:"email" validate:"required,email"`
	Password string      `json:"password" form:"password" validate:"required,min=6"`
	FullName string      `json:"full_name" form:"full_name" validate:"max=100"`
	Role     domain.Role `json:"role" form:"role" validate:"required,oneof=DONOR VOLUNTEER VICTIM"`
}

// Normalize upper-cases the role so "donor" is accepted.
func (r *RegisterRequest) Normalize() {
	r.Role = domain.Role(strings.ToUpper(strings.TrimSpace(string(r.Role))))
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,notblank"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	Enabled   bool        `json:"enabled"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
