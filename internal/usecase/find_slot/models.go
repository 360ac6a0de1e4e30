package find_slot

import (
	"time"

	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

// Request модель запроса на поиск первого доступного вхождения слота
type Request struct {
	CourseID    int64 // ID курса
	PartySize   int   // Требуемое количество мест
	HorizonDays int   // Окно сканирования в днях; 0 = дефолтные 90
}

// Response модель результата поиска
type Response struct {
	Found bool       // Найдено ли подходящее вхождение в пределах окна
	Slot  *SlotMatch // Найденное вхождение (nil, если Found = false)
}

// SlotMatch найденное вхождение слота
type SlotMatch struct {
	SlotID         int64            // ID регулярного слота
	Date           time.Time        // Дата вхождения
	DayOfWeek      int              // День недели (0 = воскресенье)
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время конца
	AvailableSeats int              // Свободных мест
}
