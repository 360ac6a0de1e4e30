package withdraw_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
	waitlistService "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist"
	"github.com/m04kA/SMC-WaitlistService/internal/service/waitlist/models"
)

const (
	msgInvalidEntryID = "некорректный ID записи"
	msgEntryNotFound  = "запись листа ожидания не найдена"
	msgCannotWithdraw = "запись уже разрешена и не может быть отозвана"
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

// Handle DELETE /api/v1/waitlist/{entryId}
// Отзыв записи из листа ожидания по инициативе клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		h.logger.Warn("DELETE /waitlist/{entryId} - Invalid entry ID: %s", vars["entryId"])
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Withdraw(r.Context(), &models.WithdrawRequest{EntryID: entryID}); err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/%d - Entry not found", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, waitlistService.ErrCannotWithdraw):
			h.logger.Warn("DELETE /waitlist/%d - Entry already resolved", entryID)
			handlers.RespondConflict(w, msgCannotWithdraw)

		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("DELETE /waitlist/%d - Invalid input: %v", entryID, err)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		default:
			h.logger.Error("DELETE /waitlist/%d - Failed to withdraw entry: %v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/%d - Entry cancelled", entryID)
	w.WriteHeader(http.StatusNoContent)
}
