package domain

// Default configuration values
const (
	DefaultCourseCapacity  = 12 // Seats per slot occurrence when the course specifies none
	DefaultScanHorizonDays = 90 // Rolling future window for availability scans
)

// Business validation constants
const (
	MinDayOfWeek        = 0 // Sunday
	MaxDayOfWeek        = 6 // Saturday
	MinParticipants     = 1
	MaxParticipants     = 50
	MaxScanHorizonDays  = 365
	MaxNotesLength      = 500
	MaxCustomerNameLen  = 200
	MaxCustomerEmailLen = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WaitlistOriginMarker пометка происхождения, добавляемая в заметки бронирования,
// созданного автоматически из листа ожидания
const WaitlistOriginMarker = "origin: waitlist auto-booking"

// ActiveBookingStatuses статусы бронирований, занимающих места в слоте
// Используется при подсчёте доступных мест
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveBookingStatuses статусы бронирований, не занимающих места
var InactiveBookingStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
