package domain

// EquipmentUnit represents a reservable equipment model in the catalog.
// Quantity is the number of physical copies of the model; a unit is available
// for a window when at least one copy is free of overlapping active reservations.
// CategoryID groups units into reservable pools: one reservation is built from
// the pool of a single category, which may span several equipment types.
// TypeID is the per-unit equipment type and the key of the one-unit-per-type
// rule; both are immutable for the lifetime of a reservation flow.
type EquipmentUnit struct {
	ID         int64
	CategoryID int64
	TypeID     int64
	Label      string
	Quantity   int
}

// AvailabilityResult is the per-unit outcome of an availability check
// for a concrete time window.
type AvailabilityResult struct {
	UnitID            int64
	TotalQuantity     int
	AvailableQuantity int
}

// IsAvailable returns true if the unit has at least one free copy in the window
func (r *AvailabilityResult) IsAvailable() bool {
	return r.AvailableQuantity > 0
}
