package check_availability

import (
	"fmt"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// validateRequest проверяет корректность входных данных до обращения к хранилищу
func validateRequest(req Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: validateRequest - unitID must be positive, got %d", ErrInvalidInput, req.UnitID)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: validateRequest - excludeReservationID must be positive, got %d", ErrInvalidInput, *req.ExcludeReservationID)
	}

	window := domain.Window{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := window.Validate(); err != nil {
		switch {
		case window.IsComplete():
			return fmt.Errorf("%w: validateRequest - %v", ErrInvalidWindow, err)
		default:
			return fmt.Errorf("%w: validateRequest - %v", ErrIncompleteWindow, err)
		}
	}

	return nil
}
