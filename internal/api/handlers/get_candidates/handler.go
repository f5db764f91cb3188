package get_candidates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	buildCandidates "github.com/m04kA/EMS-ReservationService/internal/usecase/build_candidates"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgSessionNotFound = "сессия подбора не найдена"
	msgForbidden       = "доступ запрещен"
	msgStale           = "фильтры изменились, повторите запрос"
	msgPoolUnavailable = "каталог оборудования временно недоступен"
	msgInvalidRequest  = "некорректный запрос"
)

type Handler struct {
	useCase BuildCandidatesUseCase
	logger  Logger
}

func NewHandler(useCase BuildCandidatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/selections/{sessionId}/candidates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /selections/{id}/candidates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), buildCandidates.Request{SessionID: sessionID, RequesterID: userID})
	if err != nil {
		switch {
		case errors.Is(err, buildCandidates.ErrSessionNotFound):
			h.logger.Warn("GET /selections/{id}/candidates - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, buildCandidates.ErrAccessDenied):
			h.logger.Warn("GET /selections/{id}/candidates - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, buildCandidates.ErrStaleGeneration):
			h.logger.Info("GET /selections/{id}/candidates - Stale candidate set discarded: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgStale)

		case errors.Is(err, buildCandidates.ErrPoolUnavailable):
			h.logger.Error("GET /selections/{id}/candidates - Pool unavailable: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPoolUnavailable)

		case errors.Is(err, buildCandidates.ErrInvalidInput):
			h.logger.Warn("GET /selections/{id}/candidates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /selections/{id}/candidates - Failed to build candidates: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /selections/{id}/candidates - Candidates built successfully: session_id=%s, generation=%d, count=%d",
		sessionID, resp.Generation, len(resp.Candidates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
