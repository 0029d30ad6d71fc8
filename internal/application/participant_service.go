package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
	"github.com/summitworks/eventreg/pkg/helpers"
	"github.com/summitworks/eventreg/pkg/mailer"
)

// ErrRegistrationClosed is returned when the target event exists but is not
// accepting registrations.
var ErrRegistrationClosed = errors.New("registration closed")

// ParticipantService registers participants for events and fans out the
// side effects: the search index and the confirmation email queue. Both are
// best-effort; the registration row is the source of truth.
type ParticipantService struct {
	Participants repo.ParticipantRepository
	Events       repo.EventRepository
	Publisher    *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESIndex      string
	Logger       *logrus.Logger
}

func NewParticipantService(pr repo.ParticipantRepository, er repo.EventRepository, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ParticipantService {
	return &ParticipantService{
		Participants: pr,
		Events:       er,
		Publisher:    pub,
		ES:           es,
		ESIndex:      esIndex,
		Logger:       logger,
	}
}

// Register creates a participant row for an open event. A missing event is
// repository.ErrNotFound; a closed one is ErrRegistrationClosed. userID is
// empty for walk-up registrations without a session.
func (s *ParticipantService) Register(ctx context.Context, eventID, userID string, p *entity.Participant) (*entity.Participant, error) {
	ev, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	p.EventID = ev.ID
	p.UserID = userID
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if err := s.Participants.Create(ctx, p); err != nil {
		return nil, err
	}

	s.indexParticipant(ctx, p)
	s.queueConfirmation(ctx, ev, p)
	return p, nil
}

func (s *ParticipantService) ListByEvent(ctx context.Context, eventID string) ([]*entity.Participant, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Participants.ListByEvent(ctx, eventID)
}

// RegistrationFor returns the caller's own registration for an event, if any.
func (s *ParticipantService) RegistrationFor(ctx context.Context, userID, eventID string) (*entity.Participant, error) {
	return s.Participants.GetByUserAndEvent(ctx, userID, eventID)
}

func (s *ParticipantService) queueConfirmation(ctx context.Context, ev *entity.Event, p *entity.Participant) {
	if s.Publisher == nil {
		return
	}
	start := ""
	if ev.StartDate != nil {
		start = ev.StartDate.Format("January 2, 2006")
	}
	job := mailer.EmailJob{
		To:       p.Email,
		Template: mailer.TemplateRegistrationConfirmation,
		Data: map[string]any{
			"FirstName":  p.FirstName,
			"EventName":  ev.Name,
			"Location":   ev.Location,
			"StartDate":  start,
			"Division":   p.Division,
			"TshirtSize": p.TshirtSize,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("participant_id", p.ID).Warn("confirmation email enqueue failed")
	}
}

func (s *ParticipantService) indexParticipant(ctx context.Context, p *entity.Participant) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"event_id":   p.EventID,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"division":   p.Division,
		"university": p.University,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("participant_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("participant_id", p.ID).Warn("es index response error")
	}
}

// Search queries one event's slice of the participant index on name, email,
// and university.
func (s *ParticipantService) Search(ctx context.Context, eventID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"email^2", "first_name", "last_name", "university"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"event_id": eventID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
