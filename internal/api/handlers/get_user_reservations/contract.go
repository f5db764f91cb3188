package get_user_reservations

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetRequesterReservations(ctx context.Context, req *models.GetRequesterReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
