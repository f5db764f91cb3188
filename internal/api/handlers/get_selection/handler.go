package get_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "сессия подбора не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/selections/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /selections/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.Get(r.Context(), sessionID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, selections.ErrSessionNotFound):
			h.logger.Warn("GET /selections/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("GET /selections/{id} - Access denied: session_id=%s, user_id=%d", sessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("GET /selections/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgNotFound)

		default:
			h.logger.Error("GET /selections/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /selections/{id} - Session retrieved successfully: session_id=%s, user_id=%d",
		sessionID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
