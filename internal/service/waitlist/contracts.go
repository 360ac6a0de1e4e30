package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	GetByCourse(ctx context.Context, courseID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error
	MarkCancelled(ctx context.Context, id int64) error
}

// CourseRepository интерфейс репозитория курсов
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// MailServiceClient интерфейс клиента сервиса рассылки
type MailServiceClient interface {
	SendAvailabilityNotice(ctx context.Context, notice *mailservice.AvailabilityNotice) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
