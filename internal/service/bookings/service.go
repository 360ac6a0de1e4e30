package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	mailClient  MailServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	mailClient MailServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		mailClient:  mailClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByCourse получает бронирования курса с опциональными фильтрами
// По умолчанию отдаются только активные бронирования (pending, confirmed)
func (s *Service) ListByCourse(ctx context.Context, req *models.ListByCourseRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByCourse: course=%d", req.CourseID)

	if req.CourseID <= 0 {
		return nil, fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	filter := domain.CourseBookingsFilter{
		CourseID:        req.CourseID,
		SlotID:          req.SlotID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByCourse: invalid status=%s for course=%d", *req.Status, req.CourseID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByCourseWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByCourse: repository error for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: ListByCourse - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCourse: fetched %d bookings for course=%d", len(bookings), req.CourseID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отмена освобождает места в слоте и служит триггером обработки листа ожидания -
// сам триггер запускает вызывающая сторона уже после успешной отмены
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", req.BookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	reason := strings.TrimSpace(req.CancellationReason)
	if err := s.bookingRepo.Cancel(ctx, req.BookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled (course=%d, slot=%d, freed %d seats)",
		booking.ID, booking.CourseID, booking.SlotID, booking.Participants)

	cancelled, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		// Отмена уже записана - отдаем данные из прочитанного ранее состояния
		s.logger.Warn("Cancel: failed to re-read booking id=%d: %v", req.BookingID, err)
		return models.FromDomainBooking(booking), nil
	}

	return models.FromDomainBooking(cancelled), nil
}

// SendConfirmation отправляет подтверждение бронирования по явному запросу
// Межсервисный вызов: содержимое письма приходит от вызывающей стороны
// Возвращает emailSent = false (без ошибки), если рассылка не приняла письмо
func (s *Service) SendConfirmation(ctx context.Context, req *models.SendConfirmationRequest) (bool, error) {
	s.logger.Info("SendConfirmation: booking=%d, email=%s", req.BookingID, req.CustomerEmail)

	if req.BookingID <= 0 {
		return false, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return false, fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SendConfirmation: booking id=%d not found", req.BookingID)
			return false, ErrBookingNotFound
		}
		s.logger.Error("SendConfirmation: repository error for booking id=%d: %v", req.BookingID, err)
		return false, fmt.Errorf("%w: SendConfirmation - repository error: %v", ErrInternal, err)
	}

	confirmation := &mailservice.BookingConfirmation{
		RecipientName:  req.CustomerName,
		RecipientEmail: req.CustomerEmail,
		CourseTitle:    req.CourseTitle,
		Date:           req.BookingDate,
		StartTime:      req.BookingTime,
		EndTime:        booking.EndTime.String(),
		Participants:   booking.Participants,
		BookingID:      booking.ID,
	}

	if err := s.mailClient.SendBookingConfirmation(ctx, confirmation); err != nil {
		s.logger.Warn("SendConfirmation: booking=%d confirmation not sent: %v", booking.ID, err)
		return false, nil
	}

	s.logger.Info("SendConfirmation: booking=%d confirmation sent", booking.ID)
	return true, nil
}
