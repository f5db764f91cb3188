package reservations

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByRequesterID(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
