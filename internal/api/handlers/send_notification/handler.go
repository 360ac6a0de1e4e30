package send_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	waitlistService "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEntryNotFound      = "запись листа ожидания не найдена"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/send-notification
// Отправка письма о появившемся месте: содержимое письма приходит в запросе,
// сервис только доставляет его и фиксирует факт уведомления
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/send-notification - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	emailSent, err := h.service.SendNotification(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/send-notification - Entry not found: entry_id=%d", req.WaitlistEntryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/send-notification - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /waitlist/send-notification - Failed to send notification: entry_id=%d, error=%v",
				req.WaitlistEntryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/send-notification - Done: entry_id=%d, email_sent=%t",
		req.WaitlistEntryID, emailSent)
	handlers.RespondJSON(w, http.StatusOK, SendNotificationResponse{
		Success:   true,
		EmailSent: emailSent,
	})
}
