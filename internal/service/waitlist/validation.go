package waitlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	"github.com/m04kA/SMC-WaitlistService/internal/service/waitlist/models"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// validateJoinRequest валидирует запрос на постановку в лист ожидания
func validateJoinRequest(req *models.JoinRequest) error {
	if req.CourseID <= 0 {
		return fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLen {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxCustomerEmailLen || !isValidEmail(email) {
		return fmt.Errorf("%w: customerEmail is not a valid email address", ErrInvalidInput)
	}

	if req.Participants < domain.MinParticipants {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}
	if req.Participants > domain.MaxParticipants {
		return fmt.Errorf("%w: participants exceeds maximum of %d", ErrInvalidInput, domain.MaxParticipants)
	}

	if len(req.ParticipantNames) > req.Participants {
		return fmt.Errorf("%w: more participant names than participants", ErrInvalidInput)
	}

	return nil
}

// validateSendNotificationRequest валидирует запрос на отправку уведомления
func validateSendNotificationRequest(req *models.SendNotificationRequest) error {
	if req.WaitlistEntryID <= 0 {
		return fmt.Errorf("%w: waitlistEntryId must be positive", ErrInvalidInput)
	}
	if req.CourseID <= 0 {
		return fmt.Errorf("%w: courseId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if req.SlotDate == "" {
		return fmt.Errorf("%w: availableSlot.date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.SlotDate); err != nil {
		return fmt.Errorf("%w: availableSlot.date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.SlotStartTime == "" || req.SlotEndTime == "" {
		return fmt.Errorf("%w: availableSlot times are required", ErrInvalidInput)
	}
	return nil
}

// isValidEmail выполняет базовую структурную проверку адреса
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
