package send_confirmation

import "github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"

// SendConfirmationRequest HTTP request model
type SendConfirmationRequest struct {
	BookingID     int64  `json:"bookingId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CourseTitle   string `json:"courseTitle"`
	BookingDate   string `json:"bookingDate"` // YYYY-MM-DD
	BookingTime   string `json:"bookingTime"` // HH:MM
}

// SendConfirmationResponse HTTP response model
type SendConfirmationResponse struct {
	Success   bool `json:"success"`
	EmailSent bool `json:"emailSent"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SendConfirmationRequest) ToServiceRequest() *models.SendConfirmationRequest {
	return &models.SendConfirmationRequest{
		BookingID:     r.BookingID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CourseTitle:   r.CourseTitle,
		BookingDate:   r.BookingDate,
		BookingTime:   r.BookingTime,
	}
}
