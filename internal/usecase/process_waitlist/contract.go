package process_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
)

// CourseRepository интерфейс репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	GetActiveSlots(ctx context.Context, courseID int64) ([]*domain.RecurringSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SumParticipants(ctx context.Context, slotID int64, date time.Time) (int, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetPendingByCourse(ctx context.Context, courseID int64) ([]*domain.WaitlistEntry, error)
	MarkConverted(ctx context.Context, id int64, bookingID int64, convertedAt time.Time) error
	MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error
}

// MailServiceClient интерфейс клиента сервиса рассылки
type MailServiceClient interface {
	SendAvailabilityNotice(ctx context.Context, notice *mailservice.AvailabilityNotice) error
	SendBookingConfirmation(ctx context.Context, confirmation *mailservice.BookingConfirmation) error
}

// CourseLocker интерфейс блокировки обработки на уровне курса
type CourseLocker interface {
	Lock(ctx context.Context, courseID int64) (bool, error)
	Unlock(ctx context.Context, courseID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
