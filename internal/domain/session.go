package domain

import "time"

// SelectionSession is the live editing state of one in-progress reservation.
// It is derived, recomputed state: nothing here is persisted beyond the
// session's TTL, and the selection inside is mutated only through Reduce.
type SelectionSession struct {
	ID          string
	RequesterID int64

	// Filters: the active equipment category and window. CategoryID == 0
	// means unset. The category selects the unit pool; the one-unit-per-type
	// rule inside the selection is keyed by each unit's own TypeID.
	CategoryID int64
	Window     Window

	Selection Selection

	// ExcludeReservationID is set in the edit flow so availability checks
	// skip the reservation being edited (self-exclusion).
	ExcludeReservationID *int64

	// Generation is bumped on every filter change; candidate-set builds
	// carry the generation they started with and are discarded when stale.
	Generation uint64

	CreatedAt time.Time
	ExpiresAt time.Time
}

// FiltersComplete returns true if the category and the full window are set,
// i.e. availability checks may be issued.
func (s *SelectionSession) FiltersComplete() bool {
	return s.CategoryID != 0 && s.Window.IsComplete()
}

// IsExpired returns true if the session has passed its TTL
func (s *SelectionSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
