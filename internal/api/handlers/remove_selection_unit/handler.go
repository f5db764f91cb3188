package remove_selection_unit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

const (
	msgInvalidUnitID   = "некорректный ID единицы оборудования"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgSessionNotFound = "сессия подбора не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service SelectionService
	logger  Logger
}

func NewHandler(service SelectionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/selections/{sessionId}/units/{unitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /selections/{id}/units/{unitId} - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /selections/{id}/units/{unitId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.RemoveUnit(r.Context(), sessionID, &models.RemoveUnitRequest{
		RequesterID: requesterID,
		UnitID:      unitID,
	})
	if err != nil {
		switch {
		case errors.Is(err, selections.ErrSessionNotFound):
			h.logger.Warn("DELETE /selections/{id}/units/{unitId} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("DELETE /selections/{id}/units/{unitId} - Access denied: session_id=%s, user_id=%d",
				sessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("DELETE /selections/{id}/units/{unitId} - Invalid input: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)

		default:
			h.logger.Error("DELETE /selections/{id}/units/{unitId} - Failed to remove unit: session_id=%s, unit_id=%d, error=%v",
				sessionID, unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /selections/{id}/units/{unitId} - Unit removed successfully: session_id=%s, unit_id=%d",
		sessionID, unitID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
