package get_unit_pool

import (
	"context"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

type UnitPoolProvider interface {
	GetUnitsByCategory(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error)
}

// CategoryChecker проверяет существование категории оборудования.
// Доступен только в локальном режиме каталога, в удалённом - nil.
type CategoryChecker interface {
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
