package entity

import (
	"time"
)

// Event is something participants can register for. Registration is gated by
// RegistrationOpen, not by the date range.
type Event struct {
	ID               string
	Name             string
	Description      string
	Location         string
	StartDate        *time.Time
	EndDate          *time.Time
	RegistrationOpen bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
