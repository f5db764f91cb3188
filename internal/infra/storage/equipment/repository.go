package equipment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/EMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий каталога оборудования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUnitByID получает единицу оборудования по ID
func (r *Repository) GetUnitByID(ctx context.Context, id int64) (*domain.EquipmentUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"category_id",
		"type_id",
		"label",
		"quantity",
	).
		From("equipment_units").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitByID - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.EquipmentUnit
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.CategoryID,
		&unit.TypeID,
		&unit.Label,
		&unit.Quantity,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitByID - scan unit: %v", ErrScanRow, err)
	}

	return &unit, nil
}

// GetUnitsByCategory получает пул оборудования одной категории. Пул может
// содержать единицы разных типов - подбор внутри него идёт по одной единице
// каждого типа. Порядок стабильный (по label, затем id), чтобы списки
// кандидатов не прыгали между запросами.
func (r *Repository) GetUnitsByCategory(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"category_id",
		"type_id",
		"label",
		"quantity",
	).
		From("equipment_units").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("label ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsByCategory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsByCategory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.EquipmentUnit, 0)
	for rows.Next() {
		var unit domain.EquipmentUnit
		if err := rows.Scan(&unit.ID, &unit.CategoryID, &unit.TypeID, &unit.Label, &unit.Quantity); err != nil {
			return nil, fmt.Errorf("%w: GetUnitsByCategory - scan row: %v", ErrScanRow, err)
		}
		units = append(units, &unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnitsByCategory - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// CategoryExists проверяет существование категории оборудования
func (r *Repository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("equipment_categories").
		Where(squirrel.Eq{"id": categoryID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CategoryExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CategoryExists - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
