package add_selection_unit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия подбора не найдена"
	msgForbidden          = "доступ запрещен"
	msgIncompleteFilters  = "категория оборудования и окно времени должны быть заданы полностью"
	msgFiltersChanged     = "фильтры изменились, повторите запрос"
	msgUnitNotFound       = "единица оборудования не найдена в пуле выбранного типа"
	msgUnitNotAvailable   = "единица оборудования занята в выбранном окне"
)

// AddUnitRequest HTTP request model
type AddUnitRequest struct {
	UnitID int64 `json:"unitId"`
}

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

// Handle POST /api/v1/selections/{sessionId}/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /selections/{id}/units - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selections/{id}/units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.AddUnit(r.Context(), sessionID, &models.AddUnitRequest{
		RequesterID: requesterID,
		UnitID:      req.UnitID,
	})
	if err != nil {
		switch {
		case errors.Is(err, selections.ErrSessionNotFound):
			h.logger.Warn("POST /selections/{id}/units - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("POST /selections/{id}/units - Access denied: session_id=%s, user_id=%d",
				sessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrIncompleteFilters):
			h.logger.Warn("POST /selections/{id}/units - Incomplete filters: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgIncompleteFilters)

		case errors.Is(err, selections.ErrFiltersChanged):
			h.logger.Info("POST /selections/{id}/units - Filters changed during check: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgFiltersChanged)

		case errors.Is(err, selections.ErrUnitNotFound):
			h.logger.Warn("POST /selections/{id}/units - Unit not found: session_id=%s, unit_id=%d",
				sessionID, req.UnitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, selections.ErrUnitNotAvailable):
			h.logger.Warn("POST /selections/{id}/units - Unit not available: session_id=%s, unit_id=%d",
				sessionID, req.UnitID)
			handlers.RespondError(w, http.StatusConflict, msgUnitNotAvailable)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("POST /selections/{id}/units - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /selections/{id}/units - Failed to add unit: session_id=%s, unit_id=%d, error=%v",
				sessionID, req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selections/{id}/units - Unit added successfully: session_id=%s, unit_id=%d",
		sessionID, req.UnitID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
