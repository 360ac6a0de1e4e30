package domain

import "time"

// Course represents a ceramics course offered by the studio
// Courses are managed by the admin tooling; this service only reads them
type Course struct {
	ID              int64
	Title           string
	DefaultCapacity int // Seats per slot occurrence unless the slot overrides it
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveCapacity returns the seat capacity for a slot of this course,
// honouring the per-slot override when present
func (c *Course) EffectiveCapacity(slot *RecurringSlot) int {
	if slot != nil && slot.Capacity != nil {
		return *slot.Capacity
	}
	if c.DefaultCapacity > 0 {
		return c.DefaultCapacity
	}
	return DefaultCourseCapacity
}
