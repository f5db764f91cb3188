package selections

import (
	"context"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// SessionStore интерфейс хранилища сессий подбора
type SessionStore interface {
	Create(ctx context.Context, sess *domain.SelectionSession) *domain.SelectionSession
	Get(ctx context.Context, id string) (*domain.SelectionSession, error)
	Update(ctx context.Context, id string, fn func(*domain.SelectionSession) error) (*domain.SelectionSession, error)
	Delete(ctx context.Context, id string)
	PurgeExpired(now time.Time) int
}

// UnitPoolProvider интерфейс источника пула единиц оборудования по категории
type UnitPoolProvider interface {
	GetUnitsByCategory(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error)
}

// AvailabilityChecker интерфейс единичной проверки доступности
type AvailabilityChecker interface {
	CheckUnit(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error)
}

// ReservationProvider интерфейс для загрузки бронирования при редактировании
type ReservationProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
