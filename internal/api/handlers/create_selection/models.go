package create_selection

import (
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

// CreateSelectionRequest HTTP request model
type CreateSelectionRequest struct {
	FromReservationID *int64 `json:"fromReservationId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSelectionRequest) ToServiceRequest(requesterID int64) *models.CreateSessionRequest {
	return &models.CreateSessionRequest{
		RequesterID:       requesterID,
		FromReservationID: r.FromReservationID,
	}
}
