package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/internal/domain/entity"
	"github.com/summitworks/eventreg/internal/interface/middleware"
	"github.com/summitworks/eventreg/pkg/apierror"
	"github.com/summitworks/eventreg/pkg/validation"
)

// EventHandler serves the event catalog and participant registration.
type EventHandler struct {
	Events       *application.EventService
	Participants *application.ParticipantService
	Logger       *logrus.Logger
}

func NewEventHandler(events *application.EventService, participants *application.ParticipantService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Events: events, Participants: participants, Logger: logger}
}

type eventJSON struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	Location         string     `json:"location,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	RegistrationOpen bool       `json:"registrationOpen"`
}

func toEventJSON(e *entity.Event) eventJSON {
	return eventJSON{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		Location:         e.Location,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		RegistrationOpen: e.RegistrationOpen,
	}
}

type participantJSON struct {
	ID                        string          `json:"id"`
	EventID                   string          `json:"eventId"`
	UserID                    string          `json:"userId,omitempty"`
	FirstName                 string          `json:"firstName"`
	LastName                  string          `json:"lastName"`
	Email                     string          `json:"email"`
	TshirtSize                string          `json:"tshirtSize"`
	Division                  string          `json:"division"`
	ExpectedGraduationYear    int             `json:"expectedGraduationYear"`
	University                string          `json:"university"`
	ResumeURL                 string          `json:"resumeUrl,omitempty"`
	AcknowledgedIDRequirement bool            `json:"acknowledgedIdRequirement"`
	AcknowledgedFilming       bool            `json:"acknowledgedFilming"`
	AcknowledgedTeamMerge     bool            `json:"acknowledgedTeamMerge"`
	InterestedInFinancialAid  bool            `json:"interestedInFinancialAid"`
	AdditionalData            json.RawMessage `json:"additionalData,omitempty"`
	CreatedAt                 time.Time       `json:"createdAt"`
}

func toParticipantJSON(p *entity.Participant) participantJSON {
	return participantJSON{
		ID:                        p.ID,
		EventID:                   p.EventID,
		UserID:                    p.UserID,
		FirstName:                 p.FirstName,
		LastName:                  p.LastName,
		Email:                     p.Email,
		TshirtSize:                p.TshirtSize,
		Division:                  p.Division,
		ExpectedGraduationYear:    p.ExpectedGraduationYear,
		University:                p.University,
		ResumeURL:                 p.ResumeURL,
		AcknowledgedIDRequirement: p.AcknowledgedIDRequirement,
		AcknowledgedFilming:       p.AcknowledgedFilming,
		AcknowledgedTeamMerge:     p.AcknowledgedTeamMerge,
		InterestedInFinancialAid:  p.InterestedInFinancialAid,
		AdditionalData:            p.AdditionalData,
		CreatedAt:                 p.CreatedAt,
	}
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Events.ListOpen(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, toEventJSON(e))
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

type registerParticipantRequest struct {
	FirstName                 string          `json:"firstName" binding:"required,max=120"`
	LastName                  string          `json:"lastName" binding:"required,max=120"`
	Email                     string          `json:"email" binding:"required,email"`
	TshirtSize                string          `json:"tshirtSize" binding:"required,tshirt"`
	Division                  string          `json:"division" binding:"required,division"`
	ExpectedGraduationYear    int             `json:"expectedGraduationYear" binding:"required,gradyear"`
	University                string          `json:"university" binding:"required,max=200"`
	ResumeURL                 string          `json:"resumeUrl" binding:"omitempty,url"`
	AcknowledgedIDRequirement bool            `json:"acknowledgedIdRequirement"`
	AcknowledgedFilming       bool            `json:"acknowledgedFilming"`
	AcknowledgedTeamMerge     bool            `json:"acknowledgedTeamMerge"`
	InterestedInFinancialAid  bool            `json:"interestedInFinancialAid"`
	AdditionalData            json.RawMessage `json:"additionalData"`
}

// Register POST /api/events/:event_id/register. Works with or without a
// session; a logged-in caller gets the registration linked to their account.
func (h *EventHandler) Register(c *gin.Context) {
	var req registerParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, apierror.BadRequest(validation.Message(err)))
		return
	}

	p := &entity.Participant{
		FirstName:                 req.FirstName,
		LastName:                  req.LastName,
		Email:                     req.Email,
		TshirtSize:                req.TshirtSize,
		Division:                  req.Division,
		ExpectedGraduationYear:    req.ExpectedGraduationYear,
		University:                req.University,
		ResumeURL:                 req.ResumeURL,
		AcknowledgedIDRequirement: req.AcknowledgedIDRequirement,
		AcknowledgedFilming:       req.AcknowledgedFilming,
		AcknowledgedTeamMerge:     req.AcknowledgedTeamMerge,
		InterestedInFinancialAid:  req.InterestedInFinancialAid,
		AdditionalData:            req.AdditionalData,
	}

	userID := middleware.FromContext(c).UserID()
	p, err := h.Participants.Register(c.Request.Context(), c.Param("event_id"), userID, p)
	if err != nil {
		writeError(c, err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"participant_id": p.ID,
		"event_id":       p.EventID,
	}).Info("participant registered")
	c.JSON(http.StatusOK, gin.H{"participant": toParticipantJSON(p)})
}

// ListParticipants GET /api/events/:event_id/participants
func (h *EventHandler) ListParticipants(c *gin.Context) {
	list, err := h.Participants.ListByEvent(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]participantJSON, 0, len(list))
	for _, p := range list {
		out = append(out, toParticipantJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"participants": out})
}

// MyRegistration GET /api/events/:event_id/registrations/me (auth)
func (h *EventHandler) MyRegistration(c *gin.Context) {
	p, err := h.Participants.RegistrationFor(c.Request.Context(), c.GetString("userID"), c.Param("event_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant": toParticipantJSON(p)})
}

// Search GET /api/events/:event_id/participants/search?q=&size= (auth)
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		apierror.Write(c, apierror.BadRequest("q is required"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Participants.Search(c.Request.Context(), c.Param("event_id"), q, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits})
}
