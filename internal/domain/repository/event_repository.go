package repository

import (
	"context"

	"github.com/summitworks/eventreg/internal/domain/entity"
)

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	ListOpen(ctx context.Context) ([]*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
}
