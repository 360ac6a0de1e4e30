package mailservice

// AvailabilityNotice данные письма "появилось место" для записи листа ожидания
type AvailabilityNotice struct {
	RecipientName   string `json:"recipientName"`
	RecipientEmail  string `json:"recipientEmail"`
	CourseTitle     string `json:"courseTitle"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	AvailableSeats  int    `json:"availableSeats"`
	Participants    int    `json:"participants"`
	WaitlistEntryID int64  `json:"waitlistEntryId"`
}

// BookingConfirmation данные письма с подтверждением бронирования
type BookingConfirmation struct {
	RecipientName  string `json:"recipientName"`
	RecipientEmail string `json:"recipientEmail"`
	CourseTitle    string `json:"courseTitle"`
	Date           string `json:"date"`      // YYYY-MM-DD
	StartTime      string `json:"startTime"` // HH:MM
	EndTime        string `json:"endTime"`   // HH:MM
	Participants   int    `json:"participants"`
	BookingID      int64  `json:"bookingId"`
}

// sendResponse ответ сервиса рассылки
type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
