package application

import (
	"context"
	"io"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
)

type fakeEventRepo struct {
	events map[string]*entity.Event
}

func (f *fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ListOpen(_ context.Context) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, e := range f.events {
		if e.RegistrationOpen {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, e *entity.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return repo.ErrNotFound
	}
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	delete(f.events, id)
	return nil
}

type fakeParticipantRepo struct {
	rows map[string]*entity.Participant
	seq  int
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *entity.Participant) error {
	f.seq++
	p.ID = "p-" + strconv.Itoa(f.seq)
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeParticipantRepo) GetByID(_ context.Context, id string) (*entity.Participant, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParticipantRepo) ListByEvent(_ context.Context, eventID string) ([]*entity.Participant, error) {
	var out []*entity.Participant
	for _, p := range f.rows {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) GetByUserAndEvent(_ context.Context, userID, eventID string) (*entity.Participant, error) {
	for _, p := range f.rows {
		if p.UserID == userID && p.EventID == eventID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeParticipantRepo) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func newParticipantRig(open bool) (*ParticipantService, *fakeParticipantRepo) {
	events := &fakeEventRepo{events: map[string]*entity.Event{
		"ev-1": {ID: "ev-1", Name: "Summit Hackathon", RegistrationOpen: open},
	}}
	parts := &fakeParticipantRepo{rows: map[string]*entity.Participant{}}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewParticipantService(parts, events, nil, nil, "", logger), parts
}

func TestRegisterParticipant(t *testing.T) {
	svc, _ := newParticipantRig(true)

	p, err := svc.Register(context.Background(), "ev-1", "u-1", &entity.Participant{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "Grace@Example.com ",
		Division:   "A",
		TshirtSize: "M",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "ev-1", p.EventID)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "grace@example.com", p.Email)
}

func TestRegisterParticipantAnonymous(t *testing.T) {
	svc, _ := newParticipantRig(true)

	p, err := svc.Register(context.Background(), "ev-1", "", &entity.Participant{
		FirstName: "Walk",
		LastName:  "Up",
		Email:     "walkup@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, p.UserID)
}

func TestRegisterParticipantUnknownEvent(t *testing.T) {
	svc, _ := newParticipantRig(true)

	_, err := svc.Register(context.Background(), "ev-missing", "", &entity.Participant{Email: "x@example.com"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestRegisterParticipantClosedEvent(t *testing.T) {
	svc, _ := newParticipantRig(false)

	_, err := svc.Register(context.Background(), "ev-1", "", &entity.Participant{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestListByEventRequiresEvent(t *testing.T) {
	svc, _ := newParticipantRig(true)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ev-1", "", &entity.Participant{Email: "a@example.com"})
	require.NoError(t, err)

	list, err := svc.ListByEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByEvent(ctx, "ev-missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestRegistrationFor(t *testing.T) {
	svc, _ := newParticipantRig(true)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ev-1", "u-9", &entity.Participant{Email: "me@example.com"})
	require.NoError(t, err)

	p, err := svc.RegistrationFor(ctx, "u-9", "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", p.Email)

	_, err = svc.RegistrationFor(ctx, "u-other", "ev-1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
