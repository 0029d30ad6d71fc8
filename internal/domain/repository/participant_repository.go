package repository

import (
	"context"

	"github.com/summitworks/eventreg/internal/domain/entity"
)

// ParticipantRepository defines the interface for participant-related
// database operations.
type ParticipantRepository interface {
	Create(ctx context.Context, p *entity.Participant) error
	GetByID(ctx context.Context, id string) (*entity.Participant, error)
	ListByEvent(ctx context.Context, eventID string) ([]*entity.Participant, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.Participant, error)
	Delete(ctx context.Context, id string) error
}
