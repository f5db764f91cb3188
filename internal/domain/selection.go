package domain

import "sort"

// SelectionEntry is a unit the user has added to the in-progress reservation.
// Available is the last known availability flag and is display-only: an entry
// is never dropped just because it became unavailable.
type SelectionEntry struct {
	UnitID    int64
	TypeID    int64
	Label     string
	Available bool
}

// Selection is the current set of picked units, keyed by equipment type.
// The key choice enforces the core invariant directly: no two entries can
// share a TypeID. Mutations go exclusively through Reduce.
type Selection map[int64]SelectionEntry

// Action is a selection transition. The concrete variants are AddUnit,
// RemoveUnit, ResetFilters and RefreshAvailability.
type Action interface {
	isAction()
}

// AddUnit inserts the entry; if the type is already represented,
// the previous entry is replaced (last-write-wins).
type AddUnit struct {
	Entry SelectionEntry
}

// RemoveUnit deletes the entry holding UnitID; no-op when absent.
type RemoveUnit struct {
	UnitID int64
}

// ResetFilters clears the whole selection. Issued whenever the reservation's
// type, date or time window changes, since both availability and the type pool
// depend on them.
type ResetFilters struct{}

// RefreshAvailability re-annotates every entry from a freshly built candidate
// set. Entries missing from the set are kept but marked unavailable.
type RefreshAvailability struct {
	Candidates []Candidate
}

func (AddUnit) isAction()             {}
func (RemoveUnit) isAction()          {}
func (ResetFilters) isAction()        {}
func (RefreshAvailability) isAction() {}

// Reduce applies an action to a selection and returns the next selection.
// The input selection is never mutated.
func Reduce(sel Selection, action Action) Selection {
	switch a := action.(type) {
	case AddUnit:
		next := sel.clone()
		next[a.Entry.TypeID] = a.Entry
		return next

	case RemoveUnit:
		next := sel.clone()
		for typeID, entry := range next {
			if entry.UnitID == a.UnitID {
				delete(next, typeID)
				break
			}
		}
		return next

	case ResetFilters:
		return Selection{}

	case RefreshAvailability:
		next := make(Selection, len(sel))
		for typeID, entry := range sel {
			entry.Available = false
			for i := range a.Candidates {
				if a.Candidates[i].Unit.ID == entry.UnitID {
					entry.Available = a.Candidates[i].Available
					break
				}
			}
			next[typeID] = entry
		}
		return next

	default:
		return sel.clone()
	}
}

// HasType returns true if a unit of the given type is already selected
func (s Selection) HasType(typeID int64) bool {
	_, ok := s[typeID]
	return ok
}

// HasUnit returns true if the given unit is in the selection
func (s Selection) HasUnit(unitID int64) bool {
	for _, entry := range s {
		if entry.UnitID == unitID {
			return true
		}
	}
	return false
}

// Entries returns the entries ordered by unit id, for stable responses
func (s Selection) Entries() []SelectionEntry {
	entries := make([]SelectionEntry, 0, len(s))
	for _, entry := range s {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UnitID < entries[j].UnitID
	})
	return entries
}

func (s Selection) clone() Selection {
	next := make(Selection, len(s))
	for typeID, entry := range s {
		next[typeID] = entry
	}
	return next
}
