package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	BookingID          int64
	CancellationReason string
}

// SendConfirmationRequest запрос на отправку подтверждения бронирования
type SendConfirmationRequest struct {
	BookingID     int64
	CustomerName  string
	CustomerEmail string
	CourseTitle   string
	BookingDate   string // YYYY-MM-DD
	BookingTime   string // HH:MM
}

// ListByCourseRequest запрос на получение бронирований курса
type ListByCourseRequest struct {
	CourseID        int64
	SlotID          *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// BookingResponse модель бронирования
type BookingResponse struct {
	ID                 int64
	SlotID             int64
	CourseID           int64
	BookingDate        time.Time
	StartTime          string
	EndTime            string
	Status             string
	Participants       int
	CustomerName       string
	CustomerEmail      string
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled:
		return domain.BookingStatus(status), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", status)
	}
}

// FromDomainBooking конвертирует domain.Booking в модель ответа
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 booking.ID,
		SlotID:             booking.SlotID,
		CourseID:           booking.CourseID,
		BookingDate:        booking.BookingDate,
		StartTime:          booking.StartTime.String(),
		EndTime:            booking.EndTime.String(),
		Status:             string(booking.Status),
		Participants:       booking.Participants,
		CustomerName:       booking.CustomerName,
		CustomerEmail:      booking.CustomerEmail,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует слайс бронирований в модель ответа
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, booking := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(booking))
	}
	return result
}
