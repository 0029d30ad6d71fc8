package application

import (
	"context"

	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
)

// EventService exposes the event catalog. Events are operator-managed rows;
// the public API only ever lists the ones open for registration.
type EventService struct {
	Repo repo.EventRepository
}

func NewEventService(r repo.EventRepository) *EventService {
	return &EventService{Repo: r}
}

// ListOpen returns every event currently accepting registrations.
func (s *EventService) ListOpen(ctx context.Context) ([]*entity.Event, error) {
	return s.Repo.ListOpen(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, e *entity.Event) error {
	return s.Repo.Create(ctx, e)
}

// SetRegistrationOpen flips the registration gate on an event.
func (s *EventService) SetRegistrationOpen(ctx context.Context, id string, open bool) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.RegistrationOpen = open
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
