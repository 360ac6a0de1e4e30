package get_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	waitlistService "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist"
)

const (
	msgInvalidCourseID = "некорректный ID курса"
	msgInvalidStatus   = "некорректное значение status"
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

// Handle GET /api/v1/courses/{courseId}/waitlist
// Список записей листа ожидания курса; query-параметр status фильтрует по статусу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{courseId}/waitlist - Invalid course ID: %s", vars["courseId"])
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	list, err := h.service.GetByCourse(r.Context(), courseID, status)
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("GET /courses/%d/waitlist - Invalid input: %v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /courses/%d/waitlist - Failed to list entries: %v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/%d/waitlist - Done: total=%d", courseID, list.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(list))
}
