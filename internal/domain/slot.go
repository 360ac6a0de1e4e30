package domain

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// RecurringSlot represents a weekly-recurring booking template of a course
// It is not a single occurrence: each matching calendar date generates one occurrence
type RecurringSlot struct {
	ID        int64
	CourseID  int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday (time.Weekday order)
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  *int // Per-slot capacity override; nil = course default
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchesDate returns true if the slot recurs on the weekday of the given date
func (s *RecurringSlot) MatchesDate(date time.Time) bool {
	return s.DayOfWeek == int(date.Weekday())
}

// SlotMatch represents a concrete slot occurrence found by an availability scan
type SlotMatch struct {
	Slot           *RecurringSlot
	Date           time.Time
	AvailableSeats int
}
