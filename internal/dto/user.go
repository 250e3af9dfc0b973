package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// CreateUserRequest registers a staff account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin kasir operator manajer desainer"`
}

// UpdateUserRequest updates staff account fields. A non-nil Password
// replaces the stored hash.
type UpdateUserRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin kasir operator manajer desainer"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// LoginRequest is the credential payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API shape of one staff account.
type UserResponse struct {
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain user to its API shape. The password
// hash never crosses this boundary.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		FullName:      u.FullName,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}
