package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-WaitlistService/internal/service/bookings"
	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
)

type Handler struct {
	service  BookingsService
	waitlist ProcessWaitlistUseCase
	logger   Logger
}

func NewHandler(service BookingsService, waitlist ProcessWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		service:  service,
		waitlist: waitlist,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Отмена бронирования с последующей обработкой листа ожидания курса:
// освободившиеся места сразу предлагаются ожидающим
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Invalid booking ID: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: причина отмены может отсутствовать
	var req CancelBookingRequest
	if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		h.logger.Warn("PATCH /bookings/%d/cancel - Invalid request body: %v", bookingID, decodeErr)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Cancel(r.Context(), &models.CancelBookingRequest{
		BookingID:          bookingID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking cannot be cancelled", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed to cancel booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Освободившиеся места: обрабатываем лист ожидания курса
	// Сбой обработки не отменяет уже выполненную отмену бронирования
	if result, procErr := h.waitlist.Execute(r.Context(), &processWaitlist.Request{CourseID: booking.CourseID}); procErr != nil {
		h.logger.Warn("PATCH /bookings/%d/cancel - Waitlist processing failed: course_id=%d, error=%v",
			bookingID, booking.CourseID, procErr)
	} else {
		h.logger.Info("PATCH /bookings/%d/cancel - Waitlist processed: course_id=%d, processed=%d",
			bookingID, booking.CourseID, result.Processed)
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Booking cancelled", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(booking))
}
