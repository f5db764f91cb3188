package update_selection_filters

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

type SelectionService interface {
	SetFilters(ctx context.Context, id string, req *models.SetFiltersRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
