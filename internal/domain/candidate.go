package domain

// Candidate is one unit offered to the user for the active category and window.
// Checked is false when the window was not fully specified at build time:
// the unit is then shown with a display-only default of available=true,
// and selection is gated on window completeness elsewhere.
type Candidate struct {
	Unit      EquipmentUnit
	Available bool
	Checked   bool
}

// CandidateSet is the materialized list of selectable units for one
// query generation. A set built for a stale generation is discarded
// and never committed to the session.
type CandidateSet struct {
	Generation     uint64
	CategoryID     int64
	Window         Window
	WindowComplete bool
	Items          []Candidate
}
