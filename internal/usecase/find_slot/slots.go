package find_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// availableSeats вычисляет свободные места вхождения слота (никогда не отрицательно)
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

// scanForFit ищет первое вхождение слота с достаточным количеством мест
// First-fit по дате, затем по порядку слотов; прерывается на первом попадании
func (uc *UseCase) scanForFit(
	ctx context.Context,
	course *domain.Course,
	slots []*domain.RecurringSlot,
	partySize int,
	horizonDays int,
) (*SlotMatch, error) {
	slotsByWeekday := make(map[int][]*domain.RecurringSlot)
	for _, slot := range slots {
		slotsByWeekday[slot.DayOfWeek] = append(slotsByWeekday[slot.DayOfWeek], slot)
	}

	today := dateOnly(uc.timeProvider.Now())

	for dayOffset := 0; dayOffset < horizonDays; dayOffset++ {
		date := today.AddDate(0, 0, dayOffset)

		for _, slot := range slotsByWeekday[int(date.Weekday())] {
			bookedSeats, err := uc.bookingRepo.SumParticipants(ctx, slot.ID, date)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to sum participants for slot=%d date=%s: %v",
					ErrInternal, slot.ID, date.Format(domain.DateFormat), err)
			}

			seats := availableSeats(course, slot, bookedSeats)
			if seats >= partySize {
				return &SlotMatch{
					SlotID:         slot.ID,
					Date:           date,
					DayOfWeek:      slot.DayOfWeek,
					StartTime:      slot.StartTime,
					EndTime:        slot.EndTime,
					AvailableSeats: seats,
				}, nil
			}
		}
	}

	return nil, nil
}
