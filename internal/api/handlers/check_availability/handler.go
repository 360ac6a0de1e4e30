package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCourseID    = "courseId обязателен"
	msgCourseNotFound     = "курс не найден"
	msgProcessingLocked   = "лист ожидания курса уже обрабатывается, повторите позже"
)

type Handler struct {
	useCase ProcessWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase ProcessWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/check-availability
// Триггер обработки листа ожидания: вызывается после отмены или изменения
// бронирования курса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/check-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.CourseID <= 0 {
		h.logger.Warn("POST /waitlist/check-availability - Missing course ID")
		handlers.RespondBadRequest(w, msgMissingCourseID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processWaitlist.Request{CourseID: req.CourseID})
	if err != nil {
		switch {
		case errors.Is(err, processWaitlist.ErrCourseNotFound):
			h.logger.Warn("POST /waitlist/check-availability - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, processWaitlist.ErrProcessingLocked):
			h.logger.Warn("POST /waitlist/check-availability - Processing locked: course_id=%d", req.CourseID)
			handlers.RespondConflict(w, msgProcessingLocked)

		case errors.Is(err, processWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/check-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /waitlist/check-availability - Failed to process waitlist: course_id=%d, error=%v",
				req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/check-availability - Processed: course_id=%d, processed=%d",
		req.CourseID, result.Processed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
