package get_course_bookings

import (
	"context"

	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
)

type BookingsService interface {
	ListByCourse(ctx context.Context, req *models.ListByCourseRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
