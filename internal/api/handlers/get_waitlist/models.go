package get_waitlist

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/service/waitlist/models"
)

// EntryResponse HTTP модель записи листа ожидания
type EntryResponse struct {
	ID                 int64      `json:"id"`
	CourseID           int64      `json:"courseId"`
	UserID             *int64     `json:"userId,omitempty"`
	CustomerName       string     `json:"customerName"`
	CustomerEmail      string     `json:"customerEmail"`
	Participants       int        `json:"participants"`
	ParticipantNames   []string   `json:"participantNames,omitempty"`
	AutoBook           bool       `json:"autoBook"`
	Status             string     `json:"status"`
	ConvertedBookingID *int64     `json:"convertedBookingId,omitempty"`
	ConvertedAt        *time.Time `json:"convertedAt,omitempty"`
	NotifiedAt         *time.Time `json:"notifiedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// EntryListResponse HTTP модель списка записей
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP ответ
func FromServiceResponse(list *models.EntryListResponse) *EntryListResponse {
	result := &EntryListResponse{
		Entries: make([]EntryResponse, 0, len(list.Entries)),
		Total:   list.Total,
	}
	for _, entry := range list.Entries {
		result.Entries = append(result.Entries, EntryResponse{
			ID:                 entry.ID,
			CourseID:           entry.CourseID,
			UserID:             entry.UserID,
			CustomerName:       entry.CustomerName,
			CustomerEmail:      entry.CustomerEmail,
			Participants:       entry.Participants,
			ParticipantNames:   entry.ParticipantNames,
			AutoBook:           entry.AutoBook,
			Status:             entry.Status,
			ConvertedBookingID: entry.ConvertedBookingID,
			ConvertedAt:        entry.ConvertedAt,
			NotifiedAt:         entry.NotifiedAt,
			CreatedAt:          entry.CreatedAt,
			UpdatedAt:          entry.UpdatedAt,
		})
	}
	return result
}
