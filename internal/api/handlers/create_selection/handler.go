package create_selection

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgReservationNotFound    = "бронирование не найдено"
	msgForbidden              = "доступ запрещен"
	msgReservationNotEditable = "бронирование нельзя изменить"
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

// Handle POST /api/v1/selections
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /selections - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: пустое тело - новая сессия с чистыми фильтрами
	var req CreateSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /selections - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Create(r.Context(), req.ToServiceRequest(requesterID))
	if err != nil {
		switch {
		case errors.Is(err, selections.ErrReservationNotFound):
			h.logger.Warn("POST /selections - Reservation not found: user_id=%d", requesterID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, selections.ErrAccessDenied):
			h.logger.Warn("POST /selections - Access denied: user_id=%d", requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selections.ErrNotEditable):
			h.logger.Warn("POST /selections - Reservation not editable: user_id=%d", requesterID)
			handlers.RespondError(w, http.StatusConflict, msgReservationNotEditable)

		case errors.Is(err, selections.ErrInvalidInput):
			h.logger.Warn("POST /selections - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /selections - Failed to create session: user_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selections - Session created successfully: session_id=%s, user_id=%d",
		session.ID, requesterID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
