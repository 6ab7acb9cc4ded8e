package ports

import (
	"context"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

type RegisterInput struct {
	Username string
	Password string
	Display  string
	Role     domain.Role
	WardID   string
}

type ResetPasswordInput struct {
	OldPassword string
	NewPassword string
}

// LoginResult is the full login payload handed back to the client.
type LoginResult struct {
	AccessToken  string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	HospitalID   string      `json:"hosId"`
	WardID       string      `json:"wardId"`
	Role         domain.Role `json:"role"`
	Pic          string      `json:"pic,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput, image *ImageUpload) (*domain.User, error)
	// ValidateUser returns the user with the hash stripped, or nil on any
	// mismatch. It never distinguishes unknown users from wrong passwords.
	ValidateUser(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, user *domain.User) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (TokenPair, error)
	ResetPassword(ctx context.Context, username string, in ResetPasswordInput, caller domain.Claims) error
}
