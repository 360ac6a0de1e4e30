package find_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
)

// UseCase use case поиска первого доступного вхождения слота курса
// Публичная проба доступности: тот же first-fit скан, что и в обработке
// листа ожидания, но без каких-либо записей
type UseCase struct {
	courseRepo   CourseRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courseRepo CourseRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		courseRepo:   courseRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет поиск первого подходящего вхождения слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindSlot: course=%d, partySize=%d, horizonDays=%d",
		req.CourseID, req.PartySize, req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindSlot: validation failed: %v", err)
		return nil, err
	}

	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = domain.DefaultScanHorizonDays
	}

	// 2. Получаем курс
	course, err := uc.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("FindSlot: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("FindSlot: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	// 3. Получаем активные слоты; без слотов сканировать нечего
	slots, err := uc.courseRepo.GetActiveSlots(ctx, req.CourseID)
	if err != nil {
		uc.logger.Error("FindSlot: failed to get active slots for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get active slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("FindSlot: course=%d has no active slots", req.CourseID)
		return &Response{Found: false}, nil
	}

	// 4. First-fit скан окна
	match, err := uc.scanForFit(ctx, course, slots, req.PartySize, horizonDays)
	if err != nil {
		return nil, err
	}

	if match == nil {
		uc.logger.Info("FindSlot: no fit for course=%d within %d days", req.CourseID, horizonDays)
		return &Response{Found: false}, nil
	}

	uc.logger.Info("FindSlot: course=%d matched slot=%d on %s (%d seats)",
		req.CourseID, match.SlotID, match.Date.Format(domain.DateFormat), match.AvailableSeats)

	return &Response{Found: true, Slot: match}, nil
}
