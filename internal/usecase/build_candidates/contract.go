package build_candidates

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// UnitPoolProvider интерфейс источника пула единиц оборудования по категории.
// Локальный режим - репозиторий каталога, удалённый - HTTP-клиент.
type UnitPoolProvider interface {
	GetUnitsByCategory(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error)
}

// AvailabilityChecker интерфейс единичной проверки доступности
type AvailabilityChecker interface {
	CheckUnit(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error)
}

// SessionStore интерфейс хранилища сессий подбора
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.SelectionSession, error)
	// Update атомарно применяет fn к сессии под блокировкой хранилища
	Update(ctx context.Context, id string, fn func(s *domain.SelectionSession) error) (*domain.SelectionSession, error)
}

// PoolCache опциональный кэш состава пула. Кэшируется только состав
// (список единиц категории), но никогда - результаты проверки доступности.
type PoolCache interface {
	Get(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error)
	Set(ctx context.Context, categoryID int64, units []*domain.EquipmentUnit) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
