package find_slot

import (
	"fmt"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Нулевой или отрицательный размер группы - ошибка, а не "всегда помещается"
func validateRequest(req *Request) error {
	if req.CourseID <= 0 {
		return fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	if req.PartySize < domain.MinParticipants {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}
	if req.PartySize > domain.MaxParticipants {
		return fmt.Errorf("%w: partySize exceeds maximum of %d", ErrInvalidInput, domain.MaxParticipants)
	}

	if req.HorizonDays < 0 {
		return fmt.Errorf("%w: horizonDays must not be negative", ErrInvalidInput)
	}
	if req.HorizonDays > domain.MaxScanHorizonDays {
		return fmt.Errorf("%w: horizonDays exceeds maximum of %d", ErrInvalidInput, domain.MaxScanHorizonDays)
	}

	return nil
}
