package domain

import (
	"errors"
	"time"

	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается, когда конец окна не позже начала
	ErrInvalidWindow = errors.New("domain: end time must be strictly after start time")

	// ErrIncompleteWindow возвращается, когда окно задано не полностью
	ErrIncompleteWindow = errors.New("domain: window is not fully specified")
)

// Window is the half-open interval [StartTime, EndTime) on a calendar date
// for which availability is evaluated. All times are institution-local.
type Window struct {
	Date      time.Time // calendar date, time component is ignored
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsComplete returns true if date, start and end are all set
func (w Window) IsComplete() bool {
	return !w.Date.IsZero() && w.StartTime != "" && w.EndTime != ""
}

// Validate checks the window shape: it must be complete and end strictly
// after start. Called before any availability query is issued.
func (w Window) Validate() error {
	if !w.IsComplete() {
		return ErrIncompleteWindow
	}
	if !w.EndTime.IsAfter(w.StartTime) {
		return ErrInvalidWindow
	}
	return nil
}

// SameDate returns true if both windows fall on the same calendar date
func (w Window) SameDate(other Window) bool {
	y1, m1, d1 := w.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether two half-open windows on the same date intersect.
// Back-to-back windows (one ends exactly where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	if !w.SameDate(other) {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && w.EndTime.IsAfter(other.StartTime)
}

// AvailabilityQuery defines a concrete availability check for one unit.
// ExcludeReservationID omits that reservation's own occupancy from the count,
// so a reservation being edited does not conflict with itself.
type AvailabilityQuery struct {
	UnitID               int64
	Window               Window
	ExcludeReservationID *int64
}
