package delete_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "сессия подбора не найдена"
	msgForbidden      = "доступ запрещен"
	msgInvalidRequest = "некорректный запрос"
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

// Handle DELETE /api/v1/selections/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /selections/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), sessionID, requesterID); err != nil {
		switch {
		case errors.Is(err, selections.ErrSessionNotFound):
			h.logger.Warn("DELETE /selections/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("DELETE /selections/{id} - Access denied: session_id=%s, user_id=%d", sessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("DELETE /selections/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("DELETE /selections/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /selections/{id} - Session deleted successfully: session_id=%s, user_id=%d",
		sessionID, requesterID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
