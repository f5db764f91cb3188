package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/EMS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия подбора не найдена"
	msgForbidden          = "доступ запрещен"
	msgEmptySelection     = "не выбрано ни одной единицы оборудования"
	msgIncompleteFilters  = "категория оборудования и окно времени должны быть заданы полностью"
	msgUnitNotAvailable   = "часть выбранного оборудования уже занята, обновите подбор"
	msgNotFound           = "бронирование не найдено"
	msgNotEditable        = "бронирование нельзя изменить"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requesterID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSessionNotFound):
			h.logger.Warn("POST /reservations - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations - Access denied: session_id=%s, user_id=%d",
				req.SessionID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReservation.ErrEmptySelection):
			h.logger.Warn("POST /reservations - Empty selection: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, createReservation.ErrIncompleteFilters):
			h.logger.Warn("POST /reservations - Incomplete filters: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgIncompleteFilters)

		case errors.Is(err, createReservation.ErrUnitNotAvailable):
			h.logger.Warn("POST /reservations - Unit not available: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgUnitNotAvailable)

		case errors.Is(err, createReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations - Edited reservation not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createReservation.ErrNotEditable):
			h.logger.Warn("POST /reservations - Reservation not editable: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: session_id=%s, error=%v",
				req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d",
		resp.Reservation.ID, requesterID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainReservation(resp.Reservation))
}
