package get_unit_pool

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EMS-ReservationService/internal/api/handlers"
)

const (
	msgInvalidCategoryID = "некорректный ID категории оборудования"
	msgCategoryNotFound  = "категория оборудования не найдена"
)

type Handler struct {
	pool            UnitPoolProvider
	categoryChecker CategoryChecker
	logger          Logger
}

func NewHandler(pool UnitPoolProvider, categoryChecker CategoryChecker, logger Logger) *Handler {
	return &Handler{
		pool:            pool,
		categoryChecker: categoryChecker,
		logger:          logger,
	}
}

// Handle GET /api/v1/equipment-categories/{categoryId}/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	categoryID, err := strconv.ParseInt(vars["categoryId"], 10, 64)
	if err != nil || categoryID <= 0 {
		h.logger.Warn("GET /equipment-categories/{id}/units - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if h.categoryChecker != nil {
		exists, err := h.categoryChecker.CategoryExists(r.Context(), categoryID)
		if err != nil {
			h.logger.Error("GET /equipment-categories/{id}/units - Failed to check category: category_id=%d, error=%v", categoryID, err)
			handlers.RespondInternalError(w)
			return
		}
		if !exists {
			h.logger.Warn("GET /equipment-categories/{id}/units - Category not found: category_id=%d", categoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)
			return
		}
	}

	units, err := h.pool.GetUnitsByCategory(r.Context(), categoryID)
	if err != nil {
		h.logger.Error("GET /equipment-categories/{id}/units - Failed to get units: category_id=%d, error=%v", categoryID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /equipment-categories/{id}/units - Units retrieved successfully: category_id=%d, count=%d",
		categoryID, len(units))
	handlers.RespondJSON(w, http.StatusOK, FromDomainUnits(categoryID, units))
}
