package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	storage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/equipment"
)

type UseCase struct {
	equipment    EquipmentRepository
	reservations ReservationRepository
	logger       Logger
}

func NewUseCase(equipment EquipmentRepository, reservations ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		equipment:    equipment,
		reservations: reservations,
		logger:       logger,
	}
}

// Execute проверяет доступность единицы оборудования в заданном окне.
// Доступное количество = общее количество - число активных бронирований,
// пересекающих окно. Бронирование ExcludeReservationID не учитывается.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: невалидный запрос: unitID=%d: %v", req.UnitID, err)
		return nil, err
	}

	query := domain.AvailabilityQuery{
		UnitID: req.UnitID,
		Window: domain.Window{
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		},
		ExcludeReservationID: req.ExcludeReservationID,
	}

	result, err := uc.CheckUnit(ctx, query)
	if err != nil {
		return nil, err
	}

	return &Response{
		UnitID:            result.UnitID,
		TotalQuantity:     result.TotalQuantity,
		AvailableQuantity: result.AvailableQuantity,
		Available:         result.IsAvailable(),
	}, nil
}

// CheckUnit выполняет единичную проверку доступности по готовому запросу.
// Используется напрямую сборщиком кандидатов, минуя валидацию Execute.
func (uc *UseCase) CheckUnit(ctx context.Context, query domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	unit, err := uc.equipment.GetUnitByID(ctx, query.UnitID)
	if err != nil {
		if errors.Is(err, storage.ErrUnitNotFound) {
			uc.logger.Warn("CheckAvailability: единица оборудования не найдена: unitID=%d", query.UnitID)
			return nil, fmt.Errorf("%w: CheckUnit - unitID=%d", ErrUnitNotFound, query.UnitID)
		}
		uc.logger.Error("CheckAvailability: ошибка получения единицы оборудования: unitID=%d: %v", query.UnitID, err)
		return nil, fmt.Errorf("%w: CheckUnit - get unit: %v", ErrInternal, err)
	}

	overlapping, err := uc.reservations.CountOverlappingHolds(ctx, query)
	if err != nil {
		uc.logger.Error("CheckAvailability: ошибка подсчёта пересечений: unitID=%d: %v", query.UnitID, err)
		return nil, fmt.Errorf("%w: CheckUnit - count overlapping holds: %v", ErrInternal, err)
	}

	available := unit.Quantity - overlapping
	if available < 0 {
		available = 0
	}

	return &domain.AvailabilityResult{
		UnitID:            unit.ID,
		TotalQuantity:     unit.Quantity,
		AvailableQuantity: available,
	}, nil
}
