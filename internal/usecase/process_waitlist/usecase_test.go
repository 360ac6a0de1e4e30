package process_waitlist

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
	waitlistRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// --- Моки ---

type mockCourseRepo struct {
	course     *domain.Course
	courseErr  error
	slots      []*domain.RecurringSlot
	slotsErr   error
	slotsCalls int
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	if m.courseErr != nil {
		return nil, m.courseErr
	}
	return m.course, nil
}

func (m *mockCourseRepo) GetActiveSlots(_ context.Context, _ int64) ([]*domain.RecurringSlot, error) {
	m.slotsCalls++
	if m.slotsErr != nil {
		return nil, m.slotsErr
	}
	return m.slots, nil
}

type mockBookingRepo struct {
	// Очередь ответов SumParticipants по ключу "slotID|date";
	// последнее значение остается действующим после исчерпания очереди
	sums      map[string][]int
	sumErr    error
	sumCalls  int
	created   []*domain.Booking
	createErr error
	nextID    int64
}

func sumKey(slotID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", slotID, date.Format(domain.DateFormat))
}

func (m *mockBookingRepo) SumParticipants(_ context.Context, slotID int64, date time.Time) (int, error) {
	m.sumCalls++
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	queue, ok := m.sums[sumKey(slotID, date)]
	if !ok || len(queue) == 0 {
		return 0, nil
	}
	value := queue[0]
	if len(queue) > 1 {
		m.sums[sumKey(slotID, date)] = queue[1:]
	}
	return value, nil
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	created := *booking
	created.ID = m.nextID
	m.created = append(m.created, &created)
	return &created, nil
}

type mockWaitlistRepo struct {
	pending      []*domain.WaitlistEntry
	pendingErr   error
	converted    map[int64]int64 // entryID -> bookingID
	convertedErr error
	notified     map[int64]time.Time
	notifiedErr  error
}

func newMockWaitlistRepo(entries ...*domain.WaitlistEntry) *mockWaitlistRepo {
	return &mockWaitlistRepo{
		pending:   entries,
		converted: make(map[int64]int64),
		notified:  make(map[int64]time.Time),
	}
}

func (m *mockWaitlistRepo) GetPendingByCourse(_ context.Context, _ int64) ([]*domain.WaitlistEntry, error) {
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	return m.pending, nil
}

func (m *mockWaitlistRepo) MarkConverted(_ context.Context, id int64, bookingID int64, _ time.Time) error {
	if m.convertedErr != nil {
		return m.convertedErr
	}
	m.converted[id] = bookingID
	return nil
}

func (m *mockWaitlistRepo) MarkNotified(_ context.Context, id int64, notifiedAt time.Time) error {
	if m.notifiedErr != nil {
		return m.notifiedErr
	}
	m.notified[id] = notifiedAt
	return nil
}

type mockMailClient struct {
	notices          []*mailservice.AvailabilityNotice
	noticeErr        error
	confirmations    []*mailservice.BookingConfirmation
	confirmationErr  error
}

func (m *mockMailClient) SendAvailabilityNotice(_ context.Context, notice *mailservice.AvailabilityNotice) error {
	if m.noticeErr != nil {
		return m.noticeErr
	}
	m.notices = append(m.notices, notice)
	return nil
}

func (m *mockMailClient) SendBookingConfirmation(_ context.Context, confirmation *mailservice.BookingConfirmation) error {
	if m.confirmationErr != nil {
		return m.confirmationErr
	}
	m.confirmations = append(m.confirmations, confirmation)
	return nil
}

type mockLocker struct {
	acquired    bool
	lockErr     error
	lockCalls   int
	unlockCalls int
}

func (m *mockLocker) Lock(_ context.Context, _ int64) (bool, error) {
	m.lockCalls++
	if m.lockErr != nil {
		return false, m.lockErr
	}
	return m.acquired, nil
}

func (m *mockLocker) Unlock(_ context.Context, _ int64) error {
	m.unlockCalls++
	return nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
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

func testCourse() *domain.Course {
	return &domain.Course{
		ID:              1,
		Title:           "Гончарный круг для начинающих",
		DefaultCapacity: 12,
		Active:          true,
	}
}

// Слот по вторникам 18:00-20:00, вместимость курса по умолчанию
func tuesdaySlot() *domain.RecurringSlot {
	return &domain.RecurringSlot{
		ID:        10,
		CourseID:  1,
		DayOfWeek: 2,
		StartTime: types.TimeString("18:00"),
		EndTime:   types.TimeString("20:00"),
		Active:    true,
	}
}

func pendingEntry(id int64, participants int, autoBook bool) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:            id,
		CourseID:      1,
		CustomerName:  fmt.Sprintf("Клиент %d", id),
		CustomerEmail: fmt.Sprintf("client%d@example.com", id),
		Participants:  participants,
		AutoBook:      autoBook,
		Status:        domain.WaitlistStatusPending,
		CreatedAt:     testNow.Add(-time.Duration(100-id) * time.Hour),
	}
}

type testEnv struct {
	courses  *mockCourseRepo
	bookings *mockBookingRepo
	waitlist *mockWaitlistRepo
	mail     *mockMailClient
	locker   *mockLocker
	tx       *mockTxManager
	uc       *UseCase
}

func newTestEnv(t *testing.T, waitlist *mockWaitlistRepo, slots []*domain.RecurringSlot, sums map[string][]int) *testEnv {
	t.Helper()

	env := &testEnv{
		courses:  &mockCourseRepo{course: testCourse(), slots: slots},
		bookings: &mockBookingRepo{sums: sums},
		waitlist: waitlist,
		mail:     &mockMailClient{},
		locker:   &mockLocker{acquired: true},
		tx:       &mockTxManager{},
	}

	env.uc = NewUseCase(env.courses, env.bookings, env.waitlist, env.mail, env.locker, env.tx, 90, nopLogger{})
	env.uc.timeProvider = &fixedTimeProvider{now: testNow}

	return env
}

// --- Тесты ---

func TestExecute_InvalidCourseID(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(), nil, nil)

	_, err := env.uc.Execute(context.Background(), &Request{CourseID: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CourseNotFound(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(), nil, nil)
	env.courses.courseErr = courseRepo.ErrCourseNotFound

	_, err := env.uc.Execute(context.Background(), &Request{CourseID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestExecute_NoPendingEntries(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(), []*domain.RecurringSlot{tuesdaySlot()}, nil)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Equal(t, msgNoPendingEntries, resp.Message)
	assert.Empty(t, resp.Entries)
	// Пустая очередь: слоты и бронирования не читаются
	assert.Equal(t, 0, env.courses.slotsCalls)
	assert.Equal(t, 0, env.bookings.sumCalls)
}

func TestExecute_NoActiveSlots(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(pendingEntry(1, 2, false)), nil, nil)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Equal(t, msgNoActiveSlots, resp.Message)
	// Курс без слотов: бронирования не читаются вовсе
	assert.Equal(t, 0, env.bookings.sumCalls)
}

func TestExecute_NotifiesFirstPendingEntry(t *testing.T) {
	// Вторник 2026-01-06: занято 9 из 12 мест, свободно 3
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, msgEntryNotified, resp.Message)
	require.Len(t, resp.Entries, 1)

	result := resp.Entries[0]
	assert.Equal(t, int64(1), result.EntryID)
	assert.Equal(t, OutcomeNotified, result.Outcome)
	assert.Nil(t, result.BookingID)
	assert.Equal(t, int64(10), result.SlotID)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, 3, result.AvailableSeats)

	// Статус записи зафиксирован
	assert.Contains(t, env.waitlist.notified, int64(1))
	assert.Empty(t, env.waitlist.converted)

	// Содержимое письма
	require.Len(t, env.mail.notices, 1)
	notice := env.mail.notices[0]
	assert.Equal(t, "client1@example.com", notice.RecipientEmail)
	assert.Equal(t, "Гончарный круг для начинающих", notice.CourseTitle)
	assert.Equal(t, "2026-01-06", notice.Date)
	assert.Equal(t, "18:00", notice.StartTime)
	assert.Equal(t, 3, notice.AvailableSeats)
	assert.Equal(t, int64(1), notice.WaitlistEntryID)
}

func TestExecute_AutoBookConvertsToConfirmedBooking(t *testing.T) {
	entry := pendingEntry(1, 2, true)
	entry.ParticipantNames = []string{"Анна", "Борис"}

	env := newTestEnv(t,
		newMockWaitlistRepo(entry),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, msgEntryConverted, resp.Message)
	require.Len(t, resp.Entries, 1)

	result := resp.Entries[0]
	assert.Equal(t, OutcomeConverted, result.Outcome)
	require.NotNil(t, result.BookingID)

	// Бронирование создано сразу подтвержденным, с пометкой происхождения
	require.Len(t, env.bookings.created, 1)
	booking := env.bookings.created[0]
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, int64(10), booking.SlotID)
	assert.Equal(t, 2, booking.Participants)
	require.NotNil(t, booking.Notes)
	assert.Contains(t, *booking.Notes, domain.WaitlistOriginMarker)
	assert.Contains(t, *booking.Notes, "Анна, Борис")

	// Конвертация выполнена в транзакции, статус записи обновлен
	assert.Equal(t, 1, env.tx.calls)
	assert.Equal(t, booking.ID, env.waitlist.converted[int64(1)])

	// Подтверждение отправлено
	require.Len(t, env.mail.confirmations, 1)
	assert.Equal(t, booking.ID, env.mail.confirmations[0].BookingID)
}

func TestExecute_SingleAllocationPerCall(t *testing.T) {
	// Обе записи помещаются, но за вызов разрешается только первая (FIFO)
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, false), pendingEntry(2, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {3}},
	)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, int64(1), resp.Entries[0].EntryID)

	// Вторая запись не тронута
	assert.NotContains(t, env.waitlist.notified, int64(2))
	assert.Len(t, env.mail.notices, 1)
}

func TestExecute_SmallerPartyLaterInQueueFits(t *testing.T) {
	// 3 свободных места: группа из 4 впереди очереди не помещается,
	// группа из 2 дальше в очереди - помещается
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 4, false), pendingEntry(2, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, int64(2), resp.Entries[0].EntryID)
	assert.NotContains(t, env.waitlist.notified, int64(1))
}

func TestExecute_NoFitWithinHorizon(t *testing.T) {
	// Все вхождения заняты полностью
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{},
	)
	// Без явных значений мок возвращает 0 занятых мест - зададим полную занятость
	for offset := 0; offset < 90; offset++ {
		date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		if date.Weekday() == time.Tuesday {
			env.bookings.sums[sumKey(10, date)] = []int{12}
		}
	}

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Equal(t, msgNoFit, resp.Message)
	assert.Empty(t, env.mail.notices)
	assert.Empty(t, env.waitlist.notified)
}

func TestExecute_NotificationFailureKeepsEntryPending(t *testing.T) {
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)
	env.mail.noticeErr = errors.New("mail service down")

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	// Статус не менялся: запись будет повторена следующим триггером
	assert.Empty(t, env.waitlist.notified)
}

func TestExecute_ProcessingLocked(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(), nil, nil)
	env.locker.acquired = false

	_, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessingLocked)
	assert.Equal(t, 0, env.locker.unlockCalls)
}

func TestExecute_LockFailureProceedsWithoutLock(t *testing.T) {
	// Redis недоступен: обработка продолжается без блокировки
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, false)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)
	env.locker.lockErr = errors.New("redis: connection refused")

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	// Блокировка не была захвачена - и не освобождается
	assert.Equal(t, 0, env.locker.unlockCalls)
}

func TestExecute_UnlocksAfterProcessing(t *testing.T) {
	env := newTestEnv(t, newMockWaitlistRepo(), nil, nil)

	_, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, env.locker.lockCalls)
	assert.Equal(t, 1, env.locker.unlockCalls)
}

func TestExecute_SlotTakenBetweenScanAndTransaction(t *testing.T) {
	// Первая проверка видит 3 свободных места, перепроверка в транзакции - ни одного:
	// конкурентная аллокация успела раньше, запись остается pending
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, true)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9, 12}},
	)

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Empty(t, env.bookings.created)
	assert.Empty(t, env.waitlist.converted)
}

func TestExecute_ConcurrentlyResolvedEntryRollsBackBooking(t *testing.T) {
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, true)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)
	env.waitlist.convertedErr = waitlistRepo.ErrEntryNotPending

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	// Подтверждение не отправляется: конвертация откатилась
	assert.Empty(t, env.mail.confirmations)
}

func TestExecute_ConfirmationFailureDoesNotRollBackConversion(t *testing.T) {
	env := newTestEnv(t,
		newMockWaitlistRepo(pendingEntry(1, 2, true)),
		[]*domain.RecurringSlot{tuesdaySlot()},
		map[string][]int{sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {9}},
	)
	env.mail.confirmationErr = errors.New("mail service down")

	resp, err := env.uc.Execute(context.Background(), &Request{CourseID: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Len(t, env.bookings.created, 1)
	assert.Contains(t, env.waitlist.converted, int64(1))
}

func TestFindFirstFit_RespectsHorizonBoundary(t *testing.T) {
	// Окно в 1 день (только понедельник 2026-01-05): слот по вторникам недостижим
	env := newTestEnv(t, newMockWaitlistRepo(), []*domain.RecurringSlot{tuesdaySlot()}, map[string][]int{})
	env.uc.horizonDays = 1

	match, err := env.uc.findFirstFit(context.Background(), testCourse(), env.courses.slots, 1, testNow)

	require.NoError(t, err)
	assert.Nil(t, match)

	// Окно в 2 дня уже захватывает вторник
	env.uc.horizonDays = 2
	match, err = env.uc.findFirstFit(context.Background(), testCourse(), env.courses.slots, 1, testNow)

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), match.Date)
}

func TestFindFirstFit_SkipsFullOccurrenceToNextWeek(t *testing.T) {
	// Ближайший вторник занят полностью, через неделю есть места
	env := newTestEnv(t, newMockWaitlistRepo(), []*domain.RecurringSlot{tuesdaySlot()}, map[string][]int{
		sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)):  {12},
		sumKey(10, time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)): {5},
	})

	match, err := env.uc.findFirstFit(context.Background(), testCourse(), env.courses.slots, 3, testNow)

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC), match.Date)
	assert.Equal(t, 7, match.AvailableSeats)
}

func TestFindFirstFit_SlotCapacityOverride(t *testing.T) {
	// Переопределение вместимости слота важнее дефолта курса
	capacity := 4
	slot := tuesdaySlot()
	slot.Capacity = &capacity

	env := newTestEnv(t, newMockWaitlistRepo(), []*domain.RecurringSlot{slot}, map[string][]int{
		sumKey(10, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)): {2},
	})

	match, err := env.uc.findFirstFit(context.Background(), testCourse(), env.courses.slots, 2, testNow)

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2, match.AvailableSeats)

	// Группа из 3 уже не помещается
	match, err = env.uc.findFirstFit(context.Background(), testCourse(), env.courses.slots, 3, testNow)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAvailableSeats_NeverNegative(t *testing.T) {
	course := testCourse()
	slot := tuesdaySlot()

	// Овербукинг (ручные правки в БД) не дает отрицательных мест
	assert.Equal(t, 0, availableSeats(course, slot, 15))
	assert.Equal(t, 0, availableSeats(course, slot, 12))
	assert.Equal(t, 3, availableSeats(course, slot, 9))
}
