package add_selection_unit

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

type SelectionService interface {
	AddUnit(ctx context.Context, id string, req *models.AddUnitRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
