package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusPending   WaitlistStatus = "pending"
	WaitlistStatusNotified  WaitlistStatus = "notified"
	WaitlistStatusConverted WaitlistStatus = "converted"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry represents a request to join a full course
// Entries are served strictly in order of CreatedAt (FIFO), never by party size
type WaitlistEntry struct {
	ID       int64
	CourseID int64
	UserID   *int64 // Optional account reference; guests have none

	CustomerName  string
	CustomerEmail string

	Participants     int
	ParticipantNames []string // Structured, one element per participant (may be empty)

	// AutoBook indicates the entry should be converted straight into a confirmed
	// booking instead of merely notifying the requester
	AutoBook bool

	Status WaitlistStatus

	ConvertedBookingID *int64
	ConvertedAt        *time.Time
	NotifiedAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the entry is still waiting to be resolved
func (e *WaitlistEntry) IsPending() bool {
	return e.Status == WaitlistStatusPending
}

// IsResolved returns true if the entry reached a terminal state
func (e *WaitlistEntry) IsResolved() bool {
	return e.Status == WaitlistStatusConverted || e.Status == WaitlistStatusCancelled
}

// CanBeWithdrawn returns true if the requester may still withdraw the entry
func (e *WaitlistEntry) CanBeWithdrawn() bool {
	return e.Status == WaitlistStatusPending || e.Status == WaitlistStatusNotified
}
