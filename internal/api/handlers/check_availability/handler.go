package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/EMS-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidUnitID = "некорректный ID единицы оборудования"
	msgInvalidQuery  = "некорректные параметры запроса: ожидаются date, startTime, endTime"
	msgInvalidWindow = "время окончания должно быть позже времени начала"
	msgUnitNotFound  = "единица оборудования не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment-units/{unitId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /equipment-units/{id}/availability - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	req, err := ParseQuery(unitID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /equipment-units/{id}/availability - Invalid query: unit_id=%d, error=%v", unitID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrUnitNotFound):
			h.logger.Warn("GET /equipment-units/{id}/availability - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidWindow),
			errors.Is(err, checkAvailability.ErrIncompleteWindow):
			h.logger.Warn("GET /equipment-units/{id}/availability - Invalid window: unit_id=%d", unitID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /equipment-units/{id}/availability - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /equipment-units/{id}/availability - Failed to check availability: unit_id=%d, error=%v",
				unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment-units/{id}/availability - Availability checked: unit_id=%d, available=%d/%d",
		unitID, resp.AvailableQuantity, resp.TotalQuantity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
