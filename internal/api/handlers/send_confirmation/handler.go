package send_confirmation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-WaitlistService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/send-confirmation
// Отправка подтверждения бронирования по запросу внешнего сервиса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendConfirmationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/send-confirmation - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	emailSent, err := h.service.SendConfirmation(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/send-confirmation - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/send-confirmation - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/send-confirmation - Failed to send confirmation: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/send-confirmation - Done: booking_id=%d, email_sent=%t",
		req.BookingID, emailSent)
	handlers.RespondJSON(w, http.StatusOK, SendConfirmationResponse{
		Success:   true,
		EmailSent: emailSent,
	})
}
