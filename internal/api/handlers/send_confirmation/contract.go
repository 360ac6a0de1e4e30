package send_confirmation

import (
	"context"

	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
)

type BookingsService interface {
	SendConfirmation(ctx context.Context, req *models.SendConfirmationRequest) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
