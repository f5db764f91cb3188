package create_selection

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

type SelectionService interface {
	Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
