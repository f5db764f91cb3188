package update_selection_filters

import (
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
)

// UpdateFiltersRequest HTTP request model.
// Каждое переданное поле перезаписывает текущее значение фильтра.
type UpdateFiltersRequest struct {
	CategoryID *int64  `json:"categoryId,omitempty"`
	Date       *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime  *string `json:"startTime,omitempty"` // "10:00"
	EndTime    *string `json:"endTime,omitempty"`   // "12:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateFiltersRequest) ToServiceRequest(requesterID int64) *models.SetFiltersRequest {
	return &models.SetFiltersRequest{
		RequesterID: requesterID,
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}
