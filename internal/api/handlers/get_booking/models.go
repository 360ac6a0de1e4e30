package get_booking

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
)

// BookingResponse HTTP модель бронирования
type BookingResponse struct {
	ID                 int64      `json:"id"`
	SlotID             int64      `json:"slotId"`
	CourseID           int64      `json:"courseId"`
	BookingDate        string     `json:"bookingDate"` // YYYY-MM-DD
	StartTime          string     `json:"startTime"`   // HH:MM
	EndTime            string     `json:"endTime"`     // HH:MM
	Status             string     `json:"status"`
	Participants       int        `json:"participants"`
	CustomerName       string     `json:"customerName"`
	CustomerEmail      string     `json:"customerEmail"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP ответ
func FromServiceResponse(booking *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:                 booking.ID,
		SlotID:             booking.SlotID,
		CourseID:           booking.CourseID,
		BookingDate:        booking.BookingDate.Format(domain.DateFormat),
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		Status:             booking.Status,
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
