package process_waitlist

import (
	"strings"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// newBookingFromEntry собирает подтвержденное бронирование из записи листа ожидания
// и найденного вхождения слота
//
// Статус сразу confirmed, минуя pending: клиент уже выразил твердое намерение,
// встав в лист ожидания
func newBookingFromEntry(entry *domain.WaitlistEntry, match *domain.SlotMatch) *domain.Booking {
	notes := buildProvenanceNotes(entry)

	return &domain.Booking{
		SlotID:        match.Slot.ID,
		CourseID:      entry.CourseID,
		BookingDate:   match.Date,
		StartTime:     match.Slot.StartTime,
		EndTime:       match.Slot.EndTime,
		Status:        domain.StatusConfirmed,
		Participants:  entry.Participants,
		CustomerName:  entry.CustomerName,
		CustomerEmail: entry.CustomerEmail,
		Notes:         &notes,
	}
}

// buildProvenanceNotes формирует заметки бронирования: пометка происхождения,
// затем имена участников из записи (если указаны)
func buildProvenanceNotes(entry *domain.WaitlistEntry) string {
	notes := domain.WaitlistOriginMarker
	if len(entry.ParticipantNames) > 0 {
		notes += "\nparticipants: " + strings.Join(entry.ParticipantNames, ", ")
	}
	return notes
}
