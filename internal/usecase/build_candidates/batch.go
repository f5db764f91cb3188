package build_candidates

import (
	"context"
	"sync"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// checkBatch конкурентно проверяет доступность всех единиц пула.
// Семантика all-settled: ошибка одной проверки не отменяет остальные.
// Единица с ошибкой проверки помечается недоступной (fail-closed),
// деградация одной проверки не роняет весь набор (fail-open для батча).
func (uc *UseCase) checkBatch(ctx context.Context, units []*domain.EquipmentUnit, window domain.Window, excludeReservationID *int64) []domain.Candidate {
	candidates := make([]domain.Candidate, len(units))

	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit *domain.EquipmentUnit) {
			defer wg.Done()

			result, err := uc.checker.CheckUnit(ctx, domain.AvailabilityQuery{
				UnitID:               unit.ID,
				Window:               window,
				ExcludeReservationID: excludeReservationID,
			})
			if err != nil {
				uc.logger.Warn("BuildCandidates: проверка доступности не удалась, единица помечена недоступной: unitID=%d: %v", unit.ID, err)
				candidates[i] = domain.Candidate{Unit: *unit, Available: false, Checked: true}
				return
			}

			candidates[i] = domain.Candidate{Unit: *unit, Available: result.IsAvailable(), Checked: true}
		}(i, unit)
	}
	wg.Wait()

	return candidates
}
