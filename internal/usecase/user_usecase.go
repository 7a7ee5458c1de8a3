package usecase

import (
	"context"

	"courierhub/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open a business account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	Phone    string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the self-editable profile fields. Nil fields are left untouched.
type UpdateProfileInput struct {
	Name    *string
	Company *string
	Phone   *string
}

// ChangePasswordInput replaces the caller's password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// AuthOutput returns the tokens issued for a user.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access token lifetime in seconds.
	User         *entity.User
}

// UserUsecase defines account registration, authentication and self-service.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	Me(ctx context.Context, actor entity.Actor) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, input UpdateProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, actor entity.Actor, input ChangePasswordInput) (*AuthOutput, error)
	// RegisterPushToken stores the FCM token of the actor's device. An empty token unregisters it.
	RegisterPushToken(ctx context.Context, actor entity.Actor, token string) error
}
