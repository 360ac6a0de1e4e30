package check_availability

import (
	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	CourseID int64 `json:"courseId"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Processed int           `json:"processed"`
	Entries   []EntryResult `json:"entries"`
}

// EntryResult исход обработки одной записи листа ожидания
type EntryResult struct {
	EntryID        int64  `json:"entryId"`
	Outcome        string `json:"outcome"` // converted | notified
	BookingID      *int64 `json:"bookingId,omitempty"`
	SlotID         int64  `json:"slotId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSeats int    `json:"availableSeats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processWaitlist.Response) *CheckAvailabilityResponse {
	entries := make([]EntryResult, 0, len(resp.Entries))
	for _, entry := range resp.Entries {
		entries = append(entries, EntryResult{
			EntryID:        entry.EntryID,
			Outcome:        entry.Outcome,
			BookingID:      entry.BookingID,
			SlotID:         entry.SlotID,
			Date:           entry.Date.Format(domain.DateFormat),
			StartTime:      entry.StartTime.String(),
			EndTime:        entry.EndTime.String(),
			AvailableSeats: entry.AvailableSeats,
		})
	}

	return &CheckAvailabilityResponse{
		Success:   true,
		Message:   resp.Message,
		Processed: resp.Processed,
		Entries:   entries,
	}
}
