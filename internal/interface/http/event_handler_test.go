package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
	"github.com/summitworks/eventreg/pkg/validation"
)

type memEventRepo struct {
	events map[string]*entity.Event
}

func (m *memEventRepo) Create(_ context.Context, e *entity.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *memEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEventRepo) ListOpen(_ context.Context) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, e := range m.events {
		if e.RegistrationOpen {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEventRepo) Update(_ context.Context, e *entity.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

type memParticipantRepo struct {
	rows map[string]*entity.Participant
	seq  int
}

func (m *memParticipantRepo) Create(_ context.Context, p *entity.Participant) error {
	m.seq++
	p.ID = "p-" + strconv.Itoa(m.seq)
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memParticipantRepo) GetByID(_ context.Context, id string) (*entity.Participant, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memParticipantRepo) ListByEvent(_ context.Context, eventID string) ([]*entity.Participant, error) {
	var out []*entity.Participant
	for _, p := range m.rows {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memParticipantRepo) GetByUserAndEvent(_ context.Context, userID, eventID string) (*entity.Participant, error) {
	for _, p := range m.rows {
		if p.UserID == userID && p.EventID == eventID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memParticipantRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func newEventRig(t *testing.T, open bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	events := &memEventRepo{events: map[string]*entity.Event{
		"ev-1": {ID: "ev-1", Name: "Summit Hackathon", RegistrationOpen: open},
	}}
	parts := &memParticipantRepo{rows: map[string]*entity.Participant{}}

	h := NewEventHandler(
		application.NewEventService(events),
		application.NewParticipantService(parts, events, nil, nil, "", logger),
		logger,
	)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/events", h.List)
	api.POST("/events/:event_id/register", h.Register)
	api.GET("/events/:event_id/participants", h.ListParticipants)
	return r
}

const validRegistration = `{
	"firstName": "Grace",
	"lastName": "Hopper",
	"email": "grace@example.com",
	"tshirtSize": "M",
	"division": "A",
	"expectedGraduationYear": 2027,
	"university": "Yale",
	"acknowledgedIdRequirement": true,
	"acknowledgedFilming": true,
	"acknowledgedTeamMerge": true
}`

func TestListOpenEvents(t *testing.T) {
	r := newEventRig(t, true)

	res := doJSON(r, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"events"`)
	assert.Contains(t, res.Body.String(), "Summit Hackathon")
}

func TestRegisterParticipantFlow(t *testing.T) {
	r := newEventRig(t, true)

	res := doJSON(r, http.MethodPost, "/api/events/ev-1/register", validRegistration)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), `"participant"`)
	assert.Contains(t, res.Body.String(), `"eventId":"ev-1"`)

	res = doJSON(r, http.MethodGet, "/api/events/ev-1/participants", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "grace@example.com")
}

func TestRegisterParticipantClosedEvent(t *testing.T) {
	r := newEventRig(t, false)

	res := doJSON(r, http.MethodPost, "/api/events/ev-1/register", validRegistration)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"Registration is not open for this event"}`, res.Body.String())
}

func TestRegisterParticipantUnknownEvent(t *testing.T) {
	r := newEventRig(t, true)

	res := doJSON(r, http.MethodPost, "/api/events/ev-missing/register", validRegistration)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, res.Body.String())
}

func TestRegisterParticipantBadDivision(t *testing.T) {
	r := newEventRig(t, true)

	bad := `{
		"firstName": "Grace",
		"lastName": "Hopper",
		"email": "grace@example.com",
		"tshirtSize": "M",
		"division": "C",
		"expectedGraduationYear": 2027,
		"university": "Yale"
	}`
	res := doJSON(r, http.MethodPost, "/api/events/ev-1/register", bad)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "division")
}
