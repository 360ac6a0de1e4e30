package send_notification

import "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist/models"

// AvailableSlot данные о доступном вхождении слота
type AvailableSlot struct {
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	AvailablePlaces int    `json:"availablePlaces"`
}

// SendNotificationRequest HTTP request model
type SendNotificationRequest struct {
	WaitlistEntryID int64         `json:"waitlistEntryId"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CourseTitle     string        `json:"courseTitle"`
	CourseID        int64         `json:"courseId"`
	AvailableSlot   AvailableSlot `json:"availableSlot"`
}

// SendNotificationResponse HTTP response model
type SendNotificationResponse struct {
	Success   bool `json:"success"`
	EmailSent bool `json:"emailSent"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SendNotificationRequest) ToServiceRequest() *models.SendNotificationRequest {
	return &models.SendNotificationRequest{
		WaitlistEntryID: r.WaitlistEntryID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CourseTitle:     r.CourseTitle,
		CourseID:        r.CourseID,
		SlotDate:        r.AvailableSlot.Date,
		SlotStartTime:   r.AvailableSlot.StartTime,
		SlotEndTime:     r.AvailableSlot.EndTime,
		AvailablePlaces: r.AvailableSlot.AvailablePlaces,
	}
}
