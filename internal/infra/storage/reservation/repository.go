package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/EMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями оборудования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе со строками занятых единиц.
// Ожидается вызов внутри сериализуемой транзакции (через context), чтобы
// проверка доступности и вставка были атомарны.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"requester_id",
			"category_id",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			res.RequesterID,
			res.CategoryID,
			res.ReservationDate,
			res.StartTime,
			res.EndTime,
			res.Status,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if err := r.insertUnits(ctx, executor, res.ID, res.Units); err != nil {
		return nil, err
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с занятыми единицами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"requester_id",
		"category_id",
		"reservation_date",
		"start_time",
		"end_time",
		"status",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.RequesterID,
		&res.CategoryID,
		&res.ReservationDate,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.Notes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	units, err := r.loadUnits(ctx, executor, res.ID)
	if err != nil {
		return nil, err
	}
	res.Units = units

	return &res, nil
}

// GetByRequesterID получает список бронирований пользователя.
// Опционально фильтрует по статусу.
func (r *Repository) GetByRequesterID(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"requester_id",
		"category_id",
		"reservation_date",
		"start_time",
		"end_time",
		"status",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("reservation_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	for _, res := range reservations {
		units, err := r.loadUnits(ctx, executor, res.ID)
		if err != nil {
			return nil, err
		}
		res.Units = units
	}

	return reservations, nil
}

// CountOverlappingHolds подсчитывает, сколько активных бронирований держат
// единицу оборудования в запрошенном окне. Интервалы полуоткрытые: бронирования,
// граничащие с окном (end == start), пересечением не считаются.
// ExcludeReservationID исключает собственное бронирование при редактировании.
func (r *Repository) CountOverlappingHolds(ctx context.Context, q domain.AvailabilityQuery) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("COUNT(ru.unit_id)").
		From("reservation_units ru").
		Join("reservations r ON r.id = ru.reservation_id").
		Where(squirrel.Eq{"ru.unit_id": q.UnitID}).
		Where(squirrel.Eq{"r.reservation_date": q.Window.Date}).
		Where(squirrel.NotEq{"r.status": inactiveStatusStrings}).
		Where(squirrel.Lt{"r.start_time": q.Window.EndTime}).
		Where(squirrel.Gt{"r.end_time": q.Window.StartTime})

	if q.ExcludeReservationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"r.id": *q.ExcludeReservationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlappingHolds - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlappingHolds - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateWindowAndUnits обновляет окно и состав единиц существующего бронирования.
// Используется в edit flow; строки единиц перезаписываются целиком.
func (r *Repository) UpdateWindowAndUnits(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("category_id", res.CategoryID).
		Set("reservation_date", res.ReservationDate).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWindowAndUnits - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateWindowAndUnits - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateWindowAndUnits - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("reservation_units").
		Where(squirrel.Eq{"reservation_id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateWindowAndUnits - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: UpdateWindowAndUnits - delete old units: %v", ErrExecQuery, err)
	}

	return r.insertUnits(ctx, executor, res.ID, res.Units)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// insertUnits вставляет строки занятых единиц бронирования
func (r *Repository) insertUnits(ctx context.Context, executor DBExecutor, reservationID int64, units []domain.ReservedUnit) error {
	if len(units) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("reservation_units").
		Columns("reservation_id", "unit_id", "type_id", "unit_label")

	for _, unit := range units {
		insertBuilder = insertBuilder.Values(reservationID, unit.UnitID, unit.TypeID, unit.Label)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertUnits - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertUnits - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadUnits загружает единицы, занятые бронированием
func (r *Repository) loadUnits(ctx context.Context, executor DBExecutor, reservationID int64) ([]domain.ReservedUnit, error) {
	query, args, err := psqlbuilder.Select(
		"unit_id",
		"type_id",
		"unit_label",
	).
		From("reservation_units").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("unit_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]domain.ReservedUnit, 0)
	for rows.Next() {
		var unit domain.ReservedUnit
		if err := rows.Scan(&unit.UnitID, &unit.TypeID, &unit.Label); err != nil {
			return nil, fmt.Errorf("%w: loadUnits - scan row: %v", ErrScanRow, err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadUnits - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.RequesterID,
			&res.CategoryID,
			&res.ReservationDate,
			&res.StartTime,
			&res.EndTime,
			&res.Status,
			&res.Notes,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
