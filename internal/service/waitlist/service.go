package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
	waitlistRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-WaitlistService/internal/service/waitlist/models"
)

// Service сервис для работы с листом ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	courseRepo   CourseRepository
	mailClient   MailServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	courseRepo CourseRepository,
	mailClient MailServiceClient,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		courseRepo:   courseRepo,
		mailClient:   mailClient,
		logger:       logger,
	}
}

// Join ставит клиента в лист ожидания курса
// Запись создается в статусе pending; время создания определяет FIFO порядок
func (s *Service) Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	s.logger.Info("Join: course=%d, email=%s, participants=%d, autoBook=%t",
		req.CourseID, req.CustomerEmail, req.Participants, req.AutoBook)

	if err := validateJoinRequest(req); err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	// Курс должен существовать
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Warn("Join: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("Join: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	entry := &domain.WaitlistEntry{
		CourseID:         req.CourseID,
		UserID:           req.UserID,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerEmail:    strings.TrimSpace(strings.ToLower(req.CustomerEmail)),
		Participants:     req.Participants,
		ParticipantNames: req.ParticipantNames,
		AutoBook:         req.AutoBook,
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: failed to create entry for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: created entry id=%d for course=%d", created.ID, created.CourseID)
	return models.FromDomainEntry(created), nil
}

// Withdraw отзывает запись из листа ожидания по инициативе клиента
// Допустимо только для записей в статусах pending и notified
func (s *Service) Withdraw(ctx context.Context, req *models.WithdrawRequest) error {
	s.logger.Info("Withdraw: entry=%d", req.EntryID)

	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	if _, err := s.waitlistRepo.GetByID(ctx, req.EntryID); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Withdraw: entry id=%d not found", req.EntryID)
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%d: %v", req.EntryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	if err := s.waitlistRepo.MarkCancelled(ctx, req.EntryID); err != nil {
		if errors.Is(err, waitlistRepo.ErrCannotWithdraw) {
			s.logger.Warn("Withdraw: entry id=%d already resolved", req.EntryID)
			return ErrCannotWithdraw
		}
		s.logger.Error("Withdraw: repository error for entry id=%d: %v", req.EntryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Withdraw: entry id=%d cancelled", req.EntryID)
	return nil
}

// GetByCourse получает записи листа ожидания курса с опциональным фильтром по статусу
func (s *Service) GetByCourse(ctx context.Context, courseID int64, status *string) (*models.EntryListResponse, error) {
	s.logger.Info("GetByCourse: course=%d, status=%v", courseID, status)

	if courseID <= 0 {
		return nil, fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.WaitlistStatus
	if status != nil {
		converted, err := models.ToDomainWaitlistStatus(*status)
		if err != nil {
			s.logger.Warn("GetByCourse: invalid status=%s for course=%d", *status, courseID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	entries, err := s.waitlistRepo.GetByCourse(ctx, courseID, domainStatus)
	if err != nil {
		s.logger.Error("GetByCourse: repository error for course=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: GetByCourse - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByCourse: fetched %d entries for course=%d", len(entries), courseID)
	return models.FromDomainEntryList(entries), nil
}

// SendNotification отправляет уведомление о доступном месте по явному запросу
// Межсервисный вызов: содержимое письма приходит от вызывающей стороны
// Возвращает emailSent = false (без ошибки), если рассылка не приняла письмо -
// запись остается pending и будет повторена следующим триггером обработки
func (s *Service) SendNotification(ctx context.Context, req *models.SendNotificationRequest) (bool, error) {
	s.logger.Info("SendNotification: entry=%d, course=%d, email=%s",
		req.WaitlistEntryID, req.CourseID, req.CustomerEmail)

	if err := validateSendNotificationRequest(req); err != nil {
		s.logger.Warn("SendNotification: validation failed: %v", err)
		return false, err
	}

	entry, err := s.waitlistRepo.GetByID(ctx, req.WaitlistEntryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("SendNotification: entry id=%d not found", req.WaitlistEntryID)
			return false, ErrEntryNotFound
		}
		s.logger.Error("SendNotification: repository error for entry id=%d: %v", req.WaitlistEntryID, err)
		return false, fmt.Errorf("%w: SendNotification - repository error: %v", ErrInternal, err)
	}

	notice := &mailservice.AvailabilityNotice{
		RecipientName:   req.CustomerName,
		RecipientEmail:  req.CustomerEmail,
		CourseTitle:     req.CourseTitle,
		Date:            req.SlotDate,
		StartTime:       req.SlotStartTime,
		EndTime:         req.SlotEndTime,
		AvailableSeats:  req.AvailablePlaces,
		Participants:    entry.Participants,
		WaitlistEntryID: entry.ID,
	}

	if err := s.mailClient.SendAvailabilityNotice(ctx, notice); err != nil {
		// Ошибка рассылки - не ошибка вызова: запись остается pending
		s.logger.Warn("SendNotification: entry=%d notice not sent: %v", entry.ID, err)
		return false, nil
	}

	if entry.IsPending() {
		if err := s.waitlistRepo.MarkNotified(ctx, entry.ID, nowUTC()); err != nil {
			// Письмо ушло, статус не записался - следующий триггер повторит отправку
			s.logger.Error("SendNotification: entry=%d notified but status not persisted: %v", entry.ID, err)
		}
	}

	s.logger.Info("SendNotification: entry=%d notice sent", entry.ID)
	return true, nil
}
