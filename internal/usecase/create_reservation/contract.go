package create_reservation

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateWindowAndUnits(ctx context.Context, res *domain.Reservation) error
	// CountOverlappingHolds подсчитывает активные бронирования единицы,
	// пересекающиеся с окном запроса (с учётом self-exclusion)
	CountOverlappingHolds(ctx context.Context, q domain.AvailabilityQuery) (int, error)
}

// EquipmentRepository интерфейс репозитория каталога оборудования
type EquipmentRepository interface {
	GetUnitByID(ctx context.Context, id int64) (*domain.EquipmentUnit, error)
}

// SessionStore интерфейс хранилища сессий подбора
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.SelectionSession, error)
	Delete(ctx context.Context, id string)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	// DoSerializable выполняет fn в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
