package find_slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// --- Моки ---

type mockCourseRepo struct {
	course    *domain.Course
	courseErr error
	slots     []*domain.RecurringSlot
}

func (m *mockCourseRepo) GetByID(_ context.Context, _ int64) (*domain.Course, error) {
	if m.courseErr != nil {
		return nil, m.courseErr
	}
	return m.course, nil
}

func (m *mockCourseRepo) GetActiveSlots(_ context.Context, _ int64) ([]*domain.RecurringSlot, error) {
	return m.slots, nil
}

type mockBookingRepo struct {
	sums     map[string]int
	sumCalls int
}

func sumKey(slotID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", slotID, date.Format(domain.DateFormat))
}

func (m *mockBookingRepo) SumParticipants(_ context.Context, slotID int64, date time.Time) (int, error) {
	m.sumCalls++
	return m.sums[sumKey(slotID, date)], nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

// Понедельник
var testNow = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

func newTestUseCase(slots []*domain.RecurringSlot, sums map[string]int) (*UseCase, *mockBookingRepo) {
	bookings := &mockBookingRepo{sums: sums}
	uc := NewUseCase(
		&mockCourseRepo{
			course: &domain.Course{ID: 1, Title: "Лепка из глины", DefaultCapacity: 12, Active: true},
			slots:  slots,
		},
		bookings,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, bookings
}

func weekdaySlot(id int64, dayOfWeek int, start, end string) *domain.RecurringSlot {
	return &domain.RecurringSlot{
		ID:        id,
		CourseID:  1,
		DayOfWeek: dayOfWeek,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Active:    true,
	}
}

// --- Тесты ---

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(nil, nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero course id", &Request{CourseID: 0, PartySize: 1}},
		{"zero party size", &Request{CourseID: 1, PartySize: 0}},
		{"party size above maximum", &Request{CourseID: 1, PartySize: domain.MaxParticipants + 1}},
		{"negative horizon", &Request{CourseID: 1, PartySize: 1, HorizonDays: -1}},
		{"horizon above maximum", &Request{CourseID: 1, PartySize: 1, HorizonDays: domain.MaxScanHorizonDays + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CourseNotFound(t *testing.T) {
	uc, _ := newTestUseCase(nil, nil)
	uc.courseRepo.(*mockCourseRepo).courseErr = courseRepo.ErrCourseNotFound

	_, err := uc.Execute(context.Background(), &Request{CourseID: 42, PartySize: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestExecute_NoActiveSlots(t *testing.T) {
	uc, bookings := newTestUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 2})

	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Slot)
	assert.Equal(t, 0, bookings.sumCalls)
}

func TestExecute_FindsNearestOccurrence(t *testing.T) {
	// Слот по вторникам: ближайший вторник от понедельника 2026-01-05 - это 2026-01-06
	uc, _ := newTestUseCase(
		[]*domain.RecurringSlot{weekdaySlot(10, 2, "18:00", "20:00")},
		map[string]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): 9},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 3})

	require.NoError(t, err)
	require.True(t, resp.Found)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, int64(10), resp.Slot.SlotID)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), resp.Slot.Date)
	assert.Equal(t, 2, resp.Slot.DayOfWeek)
	assert.Equal(t, "18:00", resp.Slot.StartTime.String())
	assert.Equal(t, 3, resp.Slot.AvailableSeats)
}

func TestExecute_SameDaySlotOrderIsStable(t *testing.T) {
	// Два слота в один день: побеждает более ранний по start_time
	// (репозиторий отдает слоты упорядоченными, скан сохраняет порядок)
	uc, _ := newTestUseCase(
		[]*domain.RecurringSlot{
			weekdaySlot(10, 1, "10:00", "12:00"),
			weekdaySlot(11, 1, "18:00", "20:00"),
		},
		map[string]int{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 1})

	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, int64(10), resp.Slot.SlotID)
	// Сегодняшний понедельник входит в окно
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), resp.Slot.Date)
}

func TestExecute_FullOccurrenceFallsThroughToLaterDate(t *testing.T) {
	uc, _ := newTestUseCase(
		[]*domain.RecurringSlot{weekdaySlot(10, 2, "18:00", "20:00")},
		map[string]int{
			sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)):  12,
			sumKey(10, time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)): 4,
		},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 5})

	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC), resp.Slot.Date)
	assert.Equal(t, 8, resp.Slot.AvailableSeats)
}

func TestExecute_NoFitWithinHorizon(t *testing.T) {
	// Окно в 1 день: слот по вторникам недостижим в понедельник
	uc, _ := newTestUseCase(
		[]*domain.RecurringSlot{weekdaySlot(10, 2, "18:00", "20:00")},
		map[string]int{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 1, HorizonDays: 1})

	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Slot)
}

func TestExecute_DefaultHorizonIs90Days(t *testing.T) {
	// Слот ни разу не помещается: скан обходит все вхождения дефолтного окна
	uc, bookings := newTestUseCase(
		[]*domain.RecurringSlot{weekdaySlot(10, 2, "18:00", "20:00")},
		map[string]int{},
	)
	for offset := 0; offset < domain.DefaultScanHorizonDays; offset++ {
		date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		if date.Weekday() == time.Tuesday {
			bookings.sums[sumKey(10, date)] = 12
		}
	}

	resp, err := uc.Execute(context.Background(), &Request{CourseID: 1, PartySize: 1})

	require.NoError(t, err)
	assert.False(t, resp.Found)
	// В 90-дневном окне от понедельника ровно 13 вторников
	assert.Equal(t, 13, bookings.sumCalls)
}
