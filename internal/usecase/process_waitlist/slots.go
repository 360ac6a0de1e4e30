package process_waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// availableSeats вычисляет свободные места вхождения слота
// Эффективная вместимость = переопределение слота, иначе дефолт курса
// Занятые места = сумма участников активных бронирований (pending, confirmed)
// Результат никогда не отрицательный
func availableSeats(course *domain.Course, slot *domain.RecurringSlot, bookedSeats int) int {
	seats := course.EffectiveCapacity(slot) - bookedSeats
	if seats < 0 {
		return 0
	}
	return seats
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// findFirstFit ищет первое вхождение слота с достаточным количеством свободных мест
// в скользящем окне horizonDays дней начиная с сегодня
//
// Поиск first-fit по дате, затем по порядку слотов (start_time ASC, id ASC):
// найденное вхождение не обязано быть глобально оптимальным, сканирование
// прерывается на первом попадании. Дата за пределами окна не рассматривается,
// даже если там есть места
//
// Возвращает nil без ошибки, если окно исчерпано
func (uc *UseCase) findFirstFit(
	ctx context.Context,
	course *domain.Course,
	slots []*domain.RecurringSlot,
	partySize int,
	now time.Time,
) (*domain.SlotMatch, error) {
	if partySize < domain.MinParticipants {
		return nil, fmt.Errorf("%w: party size must be positive", ErrInvalidInput)
	}

	if len(slots) == 0 {
		return nil, nil
	}

	// Слоты сгруппированы по дню недели один раз перед сканированием окна
	slotsByWeekday := make(map[int][]*domain.RecurringSlot)
	for _, slot := range slots {
		slotsByWeekday[slot.DayOfWeek] = append(slotsByWeekday[slot.DayOfWeek], slot)
	}

	today := dateOnly(now)

	for dayOffset := 0; dayOffset < uc.horizonDays; dayOffset++ {
		date := today.AddDate(0, 0, dayOffset)

		for _, slot := range slotsByWeekday[int(date.Weekday())] {
			bookedSeats, err := uc.bookingRepo.SumParticipants(ctx, slot.ID, date)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to sum participants for slot=%d date=%s: %v",
					ErrInternal, slot.ID, date.Format(domain.DateFormat), err)
			}

			seats := availableSeats(course, slot, bookedSeats)
			if seats >= partySize {
				return &domain.SlotMatch{
					Slot:           slot,
					Date:           date,
					AvailableSeats: seats,
				}, nil
			}
		}
	}

	return nil, nil
}
