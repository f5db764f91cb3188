package create_reservation

import (
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	createReservation "github.com/m04kA/EMS-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SessionID string  `json:"sessionId"`
	Notes     *string `json:"notes,omitempty"`
}

// ReservedUnitResponse одна единица оборудования в бронировании
type ReservedUnitResponse struct {
	UnitID int64  `json:"unitId"`
	TypeID int64  `json:"typeId"`
	Label  string `json:"label"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64                  `json:"id"`
	RequesterID     int64                  `json:"requesterId"`
	CategoryID      int64                  `json:"categoryId"`
	ReservationDate string                 `json:"reservationDate"`
	StartTime       string                 `json:"startTime"`
	EndTime         string                 `json:"endTime"`
	Status          string                 `json:"status"`
	Units           []ReservedUnitResponse `json:"units"`
	Notes           *string                `json:"notes,omitempty"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) createReservation.Request {
	return createReservation.Request{
		SessionID:   r.SessionID,
		RequesterID: requesterID,
		Notes:       r.Notes,
	}
}

// FromDomainReservation конвертирует domain модель в HTTP ответ
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              res.ID,
		RequesterID:     res.RequesterID,
		CategoryID:      res.CategoryID,
		ReservationDate: res.ReservationDate.Format(domain.DateFormat),
		StartTime:       res.StartTime.String(),
		EndTime:         res.EndTime.String(),
		Status:          string(res.Status),
		Units:           make([]ReservedUnitResponse, 0, len(res.Units)),
		Notes:           res.Notes,
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       res.UpdatedAt.Format(time.RFC3339),
	}
	for _, u := range res.Units {
		resp.Units = append(resp.Units, ReservedUnitResponse{
			UnitID: u.UnitID,
			TypeID: u.TypeID,
			Label:  u.Label,
		})
	}
	return resp
}
