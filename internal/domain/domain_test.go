package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCourse_EffectiveCapacity(t *testing.T) {
	course := &Course{ID: 1, DefaultCapacity: 10}
	override := 4

	// Переопределение слота важнее дефолта курса
	assert.Equal(t, 4, course.EffectiveCapacity(&RecurringSlot{Capacity: &override}))
	assert.Equal(t, 10, course.EffectiveCapacity(&RecurringSlot{}))
	assert.Equal(t, 10, course.EffectiveCapacity(nil))

	// Курс без вместимости получает глобальный дефолт
	blank := &Course{ID: 2}
	assert.Equal(t, DefaultCourseCapacity, blank.EffectiveCapacity(&RecurringSlot{}))
}

func TestRecurringSlot_MatchesDate(t *testing.T) {
	// 2026-01-06 - вторник
	tuesday := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	slot := &RecurringSlot{DayOfWeek: 2}
	assert.True(t, slot.MatchesDate(tuesday))
	assert.False(t, slot.MatchesDate(tuesday.AddDate(0, 0, 1)))
	assert.True(t, slot.MatchesDate(tuesday.AddDate(0, 0, 7)))
}

func TestBooking_ConsumesCapacity(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		consumes bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			booking := &Booking{Status: tt.status}
			assert.Equal(t, tt.consumes, booking.ConsumesCapacity())
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestWaitlistEntry_StatusTransitions(t *testing.T) {
	pending := &WaitlistEntry{Status: WaitlistStatusPending}
	notified := &WaitlistEntry{Status: WaitlistStatusNotified}
	converted := &WaitlistEntry{Status: WaitlistStatusConverted}
	cancelled := &WaitlistEntry{Status: WaitlistStatusCancelled}

	assert.True(t, pending.IsPending())
	assert.False(t, notified.IsPending())

	// notified - не терминальное состояние: клиент еще может забронировать сам
	assert.False(t, pending.IsResolved())
	assert.False(t, notified.IsResolved())
	assert.True(t, converted.IsResolved())
	assert.True(t, cancelled.IsResolved())

	assert.True(t, pending.CanBeWithdrawn())
	assert.True(t, notified.CanBeWithdrawn())
	assert.False(t, converted.CanBeWithdrawn())
	assert.False(t, cancelled.CanBeWithdrawn())
}
