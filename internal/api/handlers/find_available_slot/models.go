package find_available_slot

import (
	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	findSlot "github.com/m04kA/SMC-WaitlistService/internal/usecase/find_slot"
)

// SlotMatchResponse найденное вхождение слота
type SlotMatchResponse struct {
	SlotID         int64  `json:"slotId"`
	Date           string `json:"date"`      // YYYY-MM-DD
	DayOfWeek      int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime      string `json:"startTime"` // HH:MM
	EndTime        string `json:"endTime"`   // HH:MM
	AvailableSeats int    `json:"availableSeats"`
}

// FindSlotResponse HTTP response model
type FindSlotResponse struct {
	Found bool               `json:"found"`
	Slot  *SlotMatchResponse `json:"slot,omitempty"`
}

// FromUseCaseResponse конвертирует результат usecase в HTTP модель
func FromUseCaseResponse(resp *findSlot.Response) *FindSlotResponse {
	result := &FindSlotResponse{Found: resp.Found}
	if resp.Slot != nil {
		result.Slot = &SlotMatchResponse{
			SlotID:         resp.Slot.SlotID,
			Date:           resp.Slot.Date.Format(domain.DateFormat),
			DayOfWeek:      resp.Slot.DayOfWeek,
			StartTime:      resp.Slot.StartTime.String(),
			EndTime:        resp.Slot.EndTime.String(),
			AvailableSeats: resp.Slot.AvailableSeats,
		}
	}
	return result
}
