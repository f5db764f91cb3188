package domain

import (
	"time"

	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending              ReservationStatus = "pending"
	StatusConfirmed            ReservationStatus = "confirmed"
	StatusInProgress           ReservationStatus = "in_progress"
	StatusCompleted            ReservationStatus = "completed"
	StatusCancelledByRequester ReservationStatus = "cancelled_by_requester"
	StatusCancelledByAdmin     ReservationStatus = "cancelled_by_admin"
	StatusRejected             ReservationStatus = "rejected"
)

// ReservedUnit is one equipment unit held by a reservation.
// TypeID is denormalized so the one-unit-per-type rule can be checked
// without a catalog lookup.
type ReservedUnit struct {
	UnitID int64
	TypeID int64
	Label  string
}

// Reservation represents an equipment reservation for a time window
type Reservation struct {
	ID              int64
	RequesterID     int64
	CategoryID      int64 // equipment category the reservation was built from
	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          ReservationStatus
	Units           []ReservedUnit
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the reservation's time window
func (r *Reservation) Window() Window {
	return Window{
		Date:      r.ReservationDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeUpdated returns true if the reservation can still be edited
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
