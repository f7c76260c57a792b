package dto

import (
	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=EARNER ISSUER"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token         string `json:"token"`
	UserID        string `json:"userID"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	PointsBalance int64  `json:"pointsBalance"`
}

// UserProfile is the authenticated user's own view of their account.
type UserProfile struct {
	UserID        string `json:"userID"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Role          string `json:"role"`
	PointsBalance int64  `json:"pointsBalance"`
}

// ToUserProfile converts a domain.User to a UserProfile DTO.
func ToUserProfile(u *domain.User) UserProfile {
	return UserProfile{
		UserID:        u.UserID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          string(u.Role),
		PointsBalance: u.PointsBalance,
	}
}
