package check_availability

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// EquipmentRepository интерфейс репозитория каталога оборудования
type EquipmentRepository interface {
	GetUnitByID(ctx context.Context, id int64) (*domain.EquipmentUnit, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// CountOverlappingHolds подсчитывает активные бронирования единицы,
	// пересекающиеся с окном запроса (с учётом self-exclusion)
	CountOverlappingHolds(ctx context.Context, q domain.AvailabilityQuery) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
