package get_unit_pool

import (
	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// UnitResponse одна единица оборудования пула
type UnitResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	TypeID     int64  `json:"typeId"`
	Label      string `json:"label"`
	Quantity   int    `json:"quantity"`
}

// UnitPoolResponse HTTP response model
type UnitPoolResponse struct {
	CategoryID int64          `json:"categoryId"`
	Units      []UnitResponse `json:"units"`
}

// FromDomainUnits конвертирует пул единиц в HTTP модель
func FromDomainUnits(categoryID int64, units []*domain.EquipmentUnit) *UnitPoolResponse {
	resp := &UnitPoolResponse{
		CategoryID: categoryID,
		Units:      make([]UnitResponse, 0, len(units)),
	}
	for _, u := range units {
		resp.Units = append(resp.Units, UnitResponse{
			ID:         u.ID,
			CategoryID: u.CategoryID,
			TypeID:     u.TypeID,
			Label:      u.Label,
			Quantity:   u.Quantity,
		})
	}
	return resp
}
