package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// JoinRequest запрос на постановку в лист ожидания курса
type JoinRequest struct {
	CourseID         int64
	UserID           *int64
	CustomerName     string
	CustomerEmail    string
	Participants     int
	ParticipantNames []string
	AutoBook         bool
}

// WithdrawRequest запрос на отзыв записи из листа ожидания
type WithdrawRequest struct {
	EntryID int64
}

// SendNotificationRequest запрос на отправку уведомления о доступном месте
// Содержимое письма передается вызывающей стороной целиком
type SendNotificationRequest struct {
	WaitlistEntryID int64
	CustomerName    string
	CustomerEmail   string
	CourseTitle     string
	CourseID        int64
	SlotDate        string // YYYY-MM-DD
	SlotStartTime   string // HH:MM
	SlotEndTime     string // HH:MM
	AvailablePlaces int
}

// EntryResponse модель записи листа ожидания
type EntryResponse struct {
	ID                 int64
	CourseID           int64
	UserID             *int64
	CustomerName       string
	CustomerEmail      string
	Participants       int
	ParticipantNames   []string
	AutoBook           bool
	Status             string
	ConvertedBookingID *int64
	ConvertedAt        *time.Time
	NotifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EntryListResponse список записей листа ожидания
type EntryListResponse struct {
	Entries []EntryResponse
	Total   int
}

// FromDomainEntry конвертирует domain.WaitlistEntry в модель ответа
func FromDomainEntry(entry *domain.WaitlistEntry) *EntryResponse {
	return &EntryResponse{
		ID:                 entry.ID,
		CourseID:           entry.CourseID,
		UserID:             entry.UserID,
		CustomerName:       entry.CustomerName,
		CustomerEmail:      entry.CustomerEmail,
		Participants:       entry.Participants,
		ParticipantNames:   entry.ParticipantNames,
		AutoBook:           entry.AutoBook,
		Status:             string(entry.Status),
		ConvertedBookingID: entry.ConvertedBookingID,
		ConvertedAt:        entry.ConvertedAt,
		NotifiedAt:         entry.NotifiedAt,
		CreatedAt:          entry.CreatedAt,
		UpdatedAt:          entry.UpdatedAt,
	}
}

// FromDomainEntryList конвертирует слайс записей в модель ответа
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	result := &EntryListResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, entry := range entries {
		result.Entries = append(result.Entries, *FromDomainEntry(entry))
	}
	return result
}

// ToDomainWaitlistStatus валидирует и конвертирует строковый статус
func ToDomainWaitlistStatus(status string) (domain.WaitlistStatus, error) {
	switch domain.WaitlistStatus(status) {
	case domain.WaitlistStatusPending,
		domain.WaitlistStatusNotified,
		domain.WaitlistStatusConverted,
		domain.WaitlistStatusCancelled:
		return domain.WaitlistStatus(status), nil
	default:
		return "", fmt.Errorf("unknown waitlist status: %q", status)
	}
}
