package repository

import (
	"context"

	"github.com/summitworks/eventreg/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create fills in the generated ID and timestamps, and returns ErrEmailTaken
// when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
