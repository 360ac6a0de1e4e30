package process_waitlist

import "errors"

var (
	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("process_waitlist: course not found")

	// ErrProcessingLocked возвращается, когда обработка курса уже идет в другом вызове
	// Ошибка retryable: триггер можно повторить после освобождения блокировки
	ErrProcessingLocked = errors.New("process_waitlist: course is already being processed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_waitlist: internal error")
)
