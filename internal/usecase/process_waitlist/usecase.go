package process_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
	waitlistRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
)

// Сообщения результата обработки
const (
	msgNoPendingEntries = "лист ожидания пуст"
	msgNoActiveSlots    = "у курса нет активных слотов"
	msgNoFit            = "свободных мест, подходящих под ожидающие записи, не найдено"
	msgEntryConverted   = "запись конвертирована в подтвержденное бронирование"
	msgEntryNotified    = "клиенту отправлено уведомление о доступном месте"
)

// errSlotTaken внутренний маркер: место успели занять между сканированием и транзакцией
var errSlotTaken = errors.New("slot taken between scan and allocation")

// UseCase use case обработки листа ожидания курса
//
// Вызывается внешним триггером (отмена или изменение бронирования) и разрешает
// не более одной pending записи за вызов: одна отмена освобождает одно место,
// и выдавать его нескольким записям в одном проходе нельзя. Это осознанное
// ограничение пропускной способности - длинная очередь требует по одному
// триггеру на каждое освободившееся место
type UseCase struct {
	courseRepo   CourseRepository
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	mailClient   MailServiceClient
	locker       CourseLocker
	txManager    TransactionManager
	timeProvider TimeProvider
	horizonDays  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// horizonDays задает окно сканирования; 0 означает дефолтные 90 дней
func NewUseCase(
	courseRepo CourseRepository,
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	mailClient MailServiceClient,
	locker CourseLocker,
	txManager TransactionManager,
	horizonDays int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultScanHorizonDays
	}
	if horizonDays > domain.MaxScanHorizonDays {
		horizonDays = domain.MaxScanHorizonDays
	}

	return &UseCase{
		courseRepo:   courseRepo,
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		mailClient:   mailClient,
		locker:       locker,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		horizonDays:  horizonDays,
		logger:       logger,
	}
}

// Execute выполняет обработку листа ожидания курса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessWaitlist: course=%d", req.CourseID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ProcessWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Захватываем блокировку курса на время всего вызова
	// Закрывает гонку двух почти одновременных триггеров за одно освободившееся место
	acquired, err := uc.locker.Lock(ctx, req.CourseID)
	if err != nil {
		// Redis недоступен: работаем без блокировки - доступность сервиса важнее
		// строгости, двойную аллокацию смягчает политика одной записи за вызов
		uc.logger.Error("ProcessWaitlist: course lock unavailable, proceeding without lock: %v", err)
	} else if !acquired {
		uc.logger.Warn("ProcessWaitlist: course=%d is already being processed", req.CourseID)
		return nil, ErrProcessingLocked
	} else {
		defer func() {
			if err := uc.locker.Unlock(ctx, req.CourseID); err != nil {
				uc.logger.Error("ProcessWaitlist: failed to unlock course=%d: %v", req.CourseID, err)
			}
		}()
	}

	// 3. Получаем курс
	course, err := uc.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("ProcessWaitlist: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("ProcessWaitlist: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	// 4. Получаем pending записи в порядке создания (FIFO)
	entries, err := uc.waitlistRepo.GetPendingByCourse(ctx, req.CourseID)
	if err != nil {
		uc.logger.Error("ProcessWaitlist: failed to get pending entries for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get pending entries: %v", ErrInternal, err)
	}

	if len(entries) == 0 {
		uc.logger.Info("ProcessWaitlist: course=%d has no pending entries", req.CourseID)
		return &Response{Processed: 0, Message: msgNoPendingEntries, Entries: []EntryResult{}}, nil
	}

	// 5. Получаем активные слоты курса
	// Курс без слотов - валидный исход, а не ошибка: бронирования не читаются вовсе
	slots, err := uc.courseRepo.GetActiveSlots(ctx, req.CourseID)
	if err != nil {
		uc.logger.Error("ProcessWaitlist: failed to get active slots for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get active slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("ProcessWaitlist: course=%d has no active slots", req.CourseID)
		return &Response{Processed: 0, Message: msgNoActiveSlots, Entries: []EntryResult{}}, nil
	}

	now := uc.timeProvider.Now()
	response := &Response{Entries: []EntryResult{}}

	// 6. Обрабатываем записи строго в порядке создания
	// Промах по одной записи не прерывает проход: меньшая группа дальше в
	// очереди еще может поместиться. Проход завершается после первой успешно
	// разрешенной записи
	for _, entry := range entries {
		match, err := uc.findFirstFit(ctx, course, slots, entry.Participants, now)
		if err != nil {
			// Ошибка подбора по одной записи изолирована - остальная очередь не страдает
			uc.logger.Error("ProcessWaitlist: scan failed for entry=%d: %v", entry.ID, err)
			continue
		}
		if match == nil {
			uc.logger.Info("ProcessWaitlist: no fit for entry=%d (participants=%d)", entry.ID, entry.Participants)
			continue
		}

		var result *EntryResult
		if entry.AutoBook {
			result, err = uc.convertEntry(ctx, course, entry, match)
		} else {
			result, err = uc.notifyEntry(ctx, course, entry, match)
		}
		if err != nil {
			uc.logger.Warn("ProcessWaitlist: entry=%d left pending: %v", entry.ID, err)
			continue
		}

		response.Entries = append(response.Entries, *result)
		response.Processed++

		if result.Outcome == OutcomeConverted {
			response.Message = msgEntryConverted
		} else {
			response.Message = msgEntryNotified
		}

		// Политика одной аллокации за вызов: освободившееся место выдано, выходим
		break
	}

	if response.Processed == 0 {
		response.Message = msgNoFit
	}

	uc.logger.Info("ProcessWaitlist: course=%d processed=%d of %d pending",
		req.CourseID, response.Processed, len(entries))

	return response, nil
}

// convertEntry конвертирует запись в подтвержденное бронирование (auto_book = true)
// Повторная проверка доступности, создание бронирования и смена статуса записи
// выполняются в одной сериализуемой транзакции
func (uc *UseCase) convertEntry(
	ctx context.Context,
	course *domain.Course,
	entry *domain.WaitlistEntry,
	match *domain.SlotMatch,
) (*EntryResult, error) {
	now := uc.timeProvider.Now()

	var bookingID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перепроверяем доступность внутри транзакции: между сканированием и
		// этой точкой место могли занять
		bookedSeats, err := uc.bookingRepo.SumParticipants(txCtx, match.Slot.ID, match.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to re-check availability: %v", ErrInternal, err)
		}

		if availableSeats(course, match.Slot, bookedSeats) < entry.Participants {
			return errSlotTaken
		}

		created, err := uc.bookingRepo.Create(txCtx, newBookingFromEntry(entry, match))
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.waitlistRepo.MarkConverted(txCtx, entry.ID, created.ID, now); err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotPending) {
				// Запись успели разрешить конкурентно - откатываем бронирование
				return errSlotTaken
			}
			return fmt.Errorf("%w: failed to mark entry converted: %v", ErrInternal, err)
		}

		bookingID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ProcessWaitlist: entry=%d converted to booking=%d (slot=%d, date=%s)",
		entry.ID, bookingID, match.Slot.ID, match.Date.Format(domain.DateFormat))

	// Подтверждение отправляется best-effort: бронирование уже зафиксировано,
	// ошибка рассылки его не откатывает
	confirmation := &mailservice.BookingConfirmation{
		RecipientName:  entry.CustomerName,
		RecipientEmail: entry.CustomerEmail,
		CourseTitle:    course.Title,
		Date:           match.Date.Format(domain.DateFormat),
		StartTime:      match.Slot.StartTime.String(),
		EndTime:        match.Slot.EndTime.String(),
		Participants:   entry.Participants,
		BookingID:      bookingID,
	}
	if err := uc.mailClient.SendBookingConfirmation(ctx, confirmation); err != nil {
		uc.logger.Warn("ProcessWaitlist: booking=%d created but confirmation not sent: %v", bookingID, err)
	}

	return &EntryResult{
		EntryID:        entry.ID,
		Outcome:        OutcomeConverted,
		BookingID:      &bookingID,
		SlotID:         match.Slot.ID,
		Date:           match.Date,
		StartTime:      match.Slot.StartTime,
		EndTime:        match.Slot.EndTime,
		AvailableSeats: match.AvailableSeats,
	}, nil
}

// notifyEntry отправляет уведомление о доступном месте (auto_book = false)
// Статус записи меняется на notified только после успешной отправки:
// при ошибке рассылки запись остается pending и будет повторена следующим триггером
func (uc *UseCase) notifyEntry(
	ctx context.Context,
	course *domain.Course,
	entry *domain.WaitlistEntry,
	match *domain.SlotMatch,
) (*EntryResult, error) {
	notice := &mailservice.AvailabilityNotice{
		RecipientName:   entry.CustomerName,
		RecipientEmail:  entry.CustomerEmail,
		CourseTitle:     course.Title,
		Date:            match.Date.Format(domain.DateFormat),
		StartTime:       match.Slot.StartTime.String(),
		EndTime:         match.Slot.EndTime.String(),
		AvailableSeats:  match.AvailableSeats,
		Participants:    entry.Participants,
		WaitlistEntryID: entry.ID,
	}

	if err := uc.mailClient.SendAvailabilityNotice(ctx, notice); err != nil {
		return nil, fmt.Errorf("availability notice not sent: %w", err)
	}

	now := uc.timeProvider.Now()
	if err := uc.waitlistRepo.MarkNotified(ctx, entry.ID, now); err != nil {
		// Письмо уже ушло - место фактически предложено этому клиенту.
		// Запись останется pending и будет переотправлена следующим триггером
		uc.logger.Error("ProcessWaitlist: entry=%d notified but status not persisted: %v", entry.ID, err)
		return nil, fmt.Errorf("failed to mark entry notified: %w", err)
	}

	uc.logger.Info("ProcessWaitlist: entry=%d notified (slot=%d, date=%s, seats=%d)",
		entry.ID, match.Slot.ID, match.Date.Format(domain.DateFormat), match.AvailableSeats)

	return &EntryResult{
		EntryID:        entry.ID,
		Outcome:        OutcomeNotified,
		SlotID:         match.Slot.ID,
		Date:           match.Date,
		StartTime:      match.Slot.StartTime,
		EndTime:        match.Slot.EndTime,
		AvailableSeats: match.AvailableSeats,
	}, nil
}
