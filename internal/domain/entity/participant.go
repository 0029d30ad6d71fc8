package entity

import (
	"encoding/json"
	"time"
)

// Participant is a registration for an Event. UserID is set when the
// registering request carried an authenticated session; walk-up registrations
// leave it empty.
type Participant struct {
	ID                        string
	EventID                   string
	UserID                    string
	FirstName                 string
	LastName                  string
	Email                     string
	TshirtSize                string
	Division                  string
	ExpectedGraduationYear    int
	University                string
	ResumeURL                 string
	AcknowledgedIDRequirement bool
	AcknowledgedFilming       bool
	AcknowledgedTeamMerge     bool
	InterestedInFinancialAid  bool
	AdditionalData            json.RawMessage
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
