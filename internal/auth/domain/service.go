package domain

import (
	"context"
	"time"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the raw session token. It is returned to the client
// once and never persisted.
type LoginResult struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	// Register creates an account and logs it in.
	Register(ctx context.Context, req RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate resolves a raw bearer token to its user, refreshing the
	// session's last-seen time.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	Logout(ctx context.Context, rawToken string) error
}
