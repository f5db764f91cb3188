package models

import (
	"errors"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	RequesterID        int64  `json:"requesterId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetRequesterReservationsRequest запрос на получение бронирований пользователя
type GetRequesterReservationsRequest struct {
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// Response модели

// ReservedUnitResponse одна единица оборудования в бронировании
type ReservedUnitResponse struct {
	UnitID int64  `json:"unitId"`
	TypeID int64  `json:"typeId"`
	Label  string `json:"label"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64                  `json:"id"`
	RequesterID     int64                  `json:"requesterId"`
	CategoryID      int64                  `json:"categoryId"`
	ReservationDate string                 `json:"reservationDate"` // "2025-10-15"
	StartTime       string                 `json:"startTime"`       // "10:00"
	EndTime         string                 `json:"endTime"`         // "12:00"
	Status          string                 `json:"status"`
	Units           []ReservedUnitResponse `json:"units"`
	Notes           *string                `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		RequesterID:        r.RequesterID,
		CategoryID:         r.CategoryID,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.Status),
		Units:              make([]ReservedUnitResponse, 0, len(r.Units)),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	for _, u := range r.Units {
		resp.Units = append(resp.Units, ReservedUnitResponse{
			UnitID: u.UnitID,
			TypeID: u.TypeID,
			Label:  u.Label,
		})
	}

	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservations конвертирует список domain моделей в DTO
func FromDomainReservations(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	switch status {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByRequester,
		domain.StatusCancelledByAdmin,
		domain.StatusRejected:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
