package join_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	waitlistService "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist"
)

const (
	msgInvalidCourseID    = "некорректный ID курса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCourseNotFound     = "курс не найден"
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

// Handle POST /api/v1/courses/{courseId}/waitlist
// Постановка клиента в лист ожидания курса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("POST /courses/{courseId}/waitlist - Invalid course ID: %s", vars["courseId"])
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courses/%d/waitlist - Invalid request body: %v", courseID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Join(r.Context(), req.ToServiceRequest(courseID))
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrCourseNotFound):
			h.logger.Warn("POST /courses/%d/waitlist - Course not found", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("POST /courses/%d/waitlist - Invalid input: %v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /courses/%d/waitlist - Failed to join waitlist: %v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courses/%d/waitlist - Created entry id=%d", courseID, entry.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(entry))
}
