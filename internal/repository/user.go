package repository

import (
	"context"

	"github.com/ErlanBelekov/goals-api/internal/domain"
)

// UserRepository is the user store consumed by the auth use cases.
// Find* return domain.ErrUserNotFound when no row matches; any other error
// is an opaque store failure.
type UserRepository interface {
	Create(ctx context.Context, user *domain.PendingUser) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
