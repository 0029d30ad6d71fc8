package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
)

func TestEventServiceRegistrationGate(t *testing.T) {
	events := &fakeEventRepo{events: map[string]*entity.Event{}}
	svc := NewEventService(events)
	ctx := context.Background()

	e := &entity.Event{ID: "ev-1", Name: "Winter Summit"}
	require.NoError(t, svc.Create(ctx, e))

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open, "new events start closed")

	got, err := svc.SetRegistrationOpen(ctx, "ev-1", true)
	require.NoError(t, err)
	assert.True(t, got.RegistrationOpen)

	open, err = svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = svc.SetRegistrationOpen(ctx, "ev-missing", true)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
