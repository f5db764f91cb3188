package update_selection_filters

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сессия подбора не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
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

// Handle PATCH /api/v1/selections/{sessionId}/filters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /selections/{id}/filters - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateFiltersRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /selections/{id}/filters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SetFilters(r.Context(), sessionID, req.ToServiceRequest(requesterID))
	if err != nil {
		switch {
		case errors.Is(err, selections.ErrSessionNotFound):
			h.logger.Warn("PATCH /selections/{id}/filters - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("PATCH /selections/{id}/filters - Access denied: session_id=%s, user_id=%d",
				sessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /selections/{id}/filters - Invalid time range: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("PATCH /selections/{id}/filters - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /selections/{id}/filters - Failed to update filters: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /selections/{id}/filters - Filters updated successfully: session_id=%s, generation=%d",
		sessionID, session.Generation)
	handlers.RespondJSON(w, http.StatusOK, session)
}
