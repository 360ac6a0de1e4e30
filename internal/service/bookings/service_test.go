package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// --- Моки ---

type mockBookingRepo struct {
	booking    *domain.Booking
	bookingErr error
	byCourse   []*domain.Booking
	lastFilter *domain.CourseBookingsFilter
	cancelErr  error
	lastReason string
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if m.bookingErr != nil {
		return nil, m.bookingErr
	}
	copied := *m.booking
	return &copied, nil
}

func (m *mockBookingRepo) GetByCourseWithFilter(_ context.Context, filter domain.CourseBookingsFilter) ([]*domain.Booking, error) {
	m.lastFilter = &filter
	return m.byCourse, nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.lastReason = reason
	m.booking.Status = domain.StatusCancelled
	m.booking.CancellationReason = &reason
	now := time.Now()
	m.booking.CancelledAt = &now
	return nil
}

type mockMailClient struct {
	confirmations   []*mailservice.BookingConfirmation
	confirmationErr error
}

func (m *mockMailClient) SendBookingConfirmation(_ context.Context, confirmation *mailservice.BookingConfirmation) error {
	if m.confirmationErr != nil {
		return m.confirmationErr
	}
	m.confirmations = append(m.confirmations, confirmation)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            5,
		SlotID:        10,
		CourseID:      1,
		BookingDate:   time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("18:00"),
		EndTime:       types.TimeString("20:00"),
		Status:        domain.StatusConfirmed,
		Participants:  2,
		CustomerName:  "Мария Иванова",
		CustomerEmail: "maria@example.com",
	}
}

func newTestService(booking *domain.Booking) (*Service, *mockBookingRepo, *mockMailClient) {
	repo := &mockBookingRepo{booking: booking}
	mail := &mockMailClient{}
	return NewService(repo, mail, nopLogger{}), repo, mail
}

// --- Тесты ---

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(confirmedBooking())

	booking, err := svc.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), booking.ID)
	assert.Equal(t, "18:00", booking.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), booking.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(nil)
	repo.bookingErr = bookingRepo.ErrBookingNotFound

	_, err := svc.GetByID(context.Background(), 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	svc, repo, _ := newTestService(confirmedBooking())

	result, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          5,
		CancellationReason: "  заболел  ",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), result.Status)
	require.NotNil(t, result.CancelledAt)
	// Причина сохраняется без окружающих пробелов
	assert.Equal(t, "заболел", repo.lastReason)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	svc, _, _ := newTestService(booking)

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CompletedBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted
	svc, _, _ := newTestService(booking)

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(nil)
	repo.bookingErr = bookingRepo.ErrBookingNotFound

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByCourse_StatusFilter(t *testing.T) {
	svc, repo, _ := newTestService(confirmedBooking())
	repo.byCourse = []*domain.Booking{confirmedBooking()}

	status := "confirmed"
	list, err := svc.ListByCourse(context.Background(), &models.ListByCourseRequest{
		CourseID: 1,
		Status:   &status,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}

func TestListByCourse_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(confirmedBooking())

	status := "expired"
	_, err := svc.ListByCourse(context.Background(), &models.ListByCourseRequest{
		CourseID: 1,
		Status:   &status,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendConfirmation(t *testing.T) {
	svc, _, mail := newTestService(confirmedBooking())

	emailSent, err := svc.SendConfirmation(context.Background(), &models.SendConfirmationRequest{
		BookingID:     5,
		CustomerName:  "Мария Иванова",
		CustomerEmail: "maria@example.com",
		CourseTitle:   "Глазурование",
		BookingDate:   "2026-01-06",
		BookingTime:   "18:00",
	})

	require.NoError(t, err)
	assert.True(t, emailSent)

	require.Len(t, mail.confirmations, 1)
	confirmation := mail.confirmations[0]
	assert.Equal(t, int64(5), confirmation.BookingID)
	assert.Equal(t, "2026-01-06", confirmation.Date)
	assert.Equal(t, "18:00", confirmation.StartTime)
	// Время конца берется из бронирования, а не из запроса
	assert.Equal(t, "20:00", confirmation.EndTime)
	assert.Equal(t, 2, confirmation.Participants)
}

func TestSendConfirmation_MailFailureIsNotAnError(t *testing.T) {
	svc, _, mail := newTestService(confirmedBooking())
	mail.confirmationErr = errors.New("mail service down")

	emailSent, err := svc.SendConfirmation(context.Background(), &models.SendConfirmationRequest{
		BookingID:     5,
		CustomerEmail: "maria@example.com",
	})

	require.NoError(t, err)
	assert.False(t, emailSent)
}

func TestSendConfirmation_Validation(t *testing.T) {
	svc, _, _ := newTestService(confirmedBooking())

	_, err := svc.SendConfirmation(context.Background(), &models.SendConfirmationRequest{
		BookingID:     0,
		CustomerEmail: "maria@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendConfirmation(context.Background(), &models.SendConfirmationRequest{
		BookingID:     5,
		CustomerEmail: "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendConfirmation_BookingNotFound(t *testing.T) {
	svc, repo, _ := newTestService(nil)
	repo.bookingErr = bookingRepo.ErrBookingNotFound

	_, err := svc.SendConfirmation(context.Background(), &models.SendConfirmationRequest{
		BookingID:     5,
		CustomerEmail: "maria@example.com",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
