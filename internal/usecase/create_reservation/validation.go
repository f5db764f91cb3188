package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: validateRequest - sessionID is empty", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: validateRequest - requesterID must be positive, got %d", ErrInvalidInput, req.RequesterID)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: validateRequest - notes too long, max %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSession проверяет, что сессия готова к фиксации:
// фильтры заданы полностью и выбрана хотя бы одна единица
func validateSession(session *domain.SelectionSession) error {
	if !session.FiltersComplete() {
		return fmt.Errorf("%w: validateSession - sessionID=%s", ErrIncompleteFilters, session.ID)
	}

	if err := session.Window.Validate(); err != nil {
		return fmt.Errorf("%w: validateSession - %v", ErrIncompleteFilters, err)
	}

	if len(session.Selection) == 0 {
		return fmt.Errorf("%w: validateSession - sessionID=%s", ErrEmptySelection, session.ID)
	}

	return nil
}
