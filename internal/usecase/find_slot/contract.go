package find_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// CourseRepository интерфейс репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	GetActiveSlots(ctx context.Context, courseID int64) ([]*domain.RecurringSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumParticipants(ctx context.Context, slotID int64, date time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
