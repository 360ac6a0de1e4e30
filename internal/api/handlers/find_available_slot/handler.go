package find_available_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	findSlot "github.com/m04kA/SMC-WaitlistService/internal/usecase/find_slot"
)

const (
	msgInvalidCourseID    = "некорректный ID курса"
	msgInvalidPartySize   = "некорректное значение partySize"
	msgInvalidHorizonDays = "некорректное значение horizonDays"
	msgCourseNotFound     = "курс не найден"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/next-available-slot
// Публичная проверка ближайшего вхождения слота с достаточным числом мест
// Query-параметры: partySize (по умолчанию 1), horizonDays (по умолчанию 90)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseId"], 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{courseId}/next-available-slot - Invalid course ID: %s", vars["courseId"])
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	partySize := 1
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		partySize, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /courses/%d/next-available-slot - Invalid partySize: %s", courseID, raw)
			handlers.RespondBadRequest(w, msgInvalidPartySize)
			return
		}
	}

	horizonDays := 0
	if raw := r.URL.Query().Get("horizonDays"); raw != "" {
		horizonDays, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /courses/%d/next-available-slot - Invalid horizonDays: %s", courseID, raw)
			handlers.RespondBadRequest(w, msgInvalidHorizonDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &findSlot.Request{
		CourseID:    courseID,
		PartySize:   partySize,
		HorizonDays: horizonDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, findSlot.ErrCourseNotFound):
			h.logger.Warn("GET /courses/%d/next-available-slot - Course not found", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, findSlot.ErrInvalidInput):
			h.logger.Warn("GET /courses/%d/next-available-slot - Invalid input: %v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /courses/%d/next-available-slot - Failed to find slot: %v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/%d/next-available-slot - Done: found=%t, party_size=%d",
		courseID, result.Found, partySize)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
