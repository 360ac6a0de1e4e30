package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
)

type BookingsService interface {
	Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

// ProcessWaitlistUseCase триггер обработки листа ожидания после освобождения мест
type ProcessWaitlistUseCase interface {
	Execute(ctx context.Context, req *processWaitlist.Request) (*processWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
