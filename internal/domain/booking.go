package domain

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a concrete reservation against one slot occurrence
type Booking struct {
	ID       int64
	SlotID   int64
	CourseID int64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	Status       BookingStatus
	Participants int

	CustomerName  string
	CustomerEmail string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumesCapacity returns true if the booking counts against slot capacity
// Only pending and confirmed bookings hold seats; a cancellation frees them
func (b *Booking) ConsumesCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CourseBookingsFilter фильтр для получения бронирований курса
type CourseBookingsFilter struct {
	CourseID        int64          // Обязательный параметр
	SlotID          *int64         // Фильтр по слоту (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и завершенные бронирования
}
