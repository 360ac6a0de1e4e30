package get_course_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	"github.com/m04kA/SMC-WaitlistService/internal/domain"
	bookingsService "github.com/m04kA/SMC-WaitlistService/internal/service/bookings"
	"github.com/m04kA/SMC-WaitlistService/internal/service/bookings/models"
)

const (
	msgInvalidCourseID = "некорректный ID курса"
	msgInvalidParams   = "некорректные параметры запроса"
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

// Handle GET /api/v1/courses/{courseId}/bookings
// Список бронирований курса с фильтрами: slotId, startDate, endDate, status,
// includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{courseId}/bookings - Invalid course ID: %s", vars["courseId"])
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	req := &models.ListByCourseRequest{CourseID: courseID}
	query := r.URL.Query()

	if raw := query.Get("slotId"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /courses/%d/bookings - Invalid slotId: %s", courseID, raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.SlotID = &slotID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /courses/%d/bookings - Invalid startDate: %s", courseID, raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /courses/%d/bookings - Invalid endDate: %s", courseID, raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	list, err := h.service.ListByCourse(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /courses/%d/bookings - Invalid input: %v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /courses/%d/bookings - Failed to list bookings: %v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/%d/bookings - Done: total=%d", courseID, list.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(list))
}
