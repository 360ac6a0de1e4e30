package process_waitlist

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// Исходы обработки одной записи листа ожидания
const (
	OutcomeConverted = "converted" // создано подтвержденное бронирование
	OutcomeNotified  = "notified"  // отправлено уведомление о доступности
)

// Request модель запроса на обработку листа ожидания курса
type Request struct {
	CourseID int64 // ID курса
}

// Response модель результата обработки
type Response struct {
	Processed int           // Количество разрешенных записей (0 или 1 - см. политику одной аллокации)
	Message   string        // Пояснение результата для вызывающей стороны
	Entries   []EntryResult // Исходы по обработанным записям
}

// EntryResult исход обработки одной записи листа ожидания
type EntryResult struct {
	EntryID        int64            // ID записи
	Outcome        string           // converted | notified
	BookingID      *int64           // ID созданного бронирования (только для converted)
	SlotID         int64            // ID подошедшего слота
	Date           time.Time        // Дата вхождения слота
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время конца
	AvailableSeats int              // Свободных мест на момент подбора
}
