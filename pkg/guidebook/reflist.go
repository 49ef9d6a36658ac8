package guidebook

import (
	"fmt"
	"slices"
)

// RefList is an ordered, duplicate-free collection of reference ids. Reorder
// and removal invariants (bounds, unique ids) are enforced here once instead
// of at every call site that used to splice raw arrays.
type RefList struct {
	ids []string
}

// NewRefList builds a list from ids, silently dropping duplicates while
// preserving first-seen order.
func NewRefList(ids ...string) *RefList {
	return &RefList{ids: BulkAdd(nil, ids)}
}

// Len returns the number of ids.
func (l *RefList) Len() int { return len(l.ids) }

// IDs returns a copy of the ids in order.
func (l *RefList) IDs() []string { return slices.Clone(l.ids) }

// Contains reports whether id is present.
func (l *RefList) Contains(id string) bool { return slices.Contains(l.ids, id) }

// InsertAt inserts id at index i (0 <= i <= Len). Inserting an id already in
// the list fails with ErrDuplicateRef.
func (l *RefList) InsertAt(i int, id string) error {
	if i < 0 || i > len(l.ids) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(l.ids))
	}
	if l.Contains(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateRef, id)
	}
	l.ids = slices.Insert(l.ids, i, id)
	return nil
}

// Append adds id at the end.
func (l *RefList) Append(id string) error {
	return l.InsertAt(len(l.ids), id)
}

// RemoveAt removes and returns the id at index i.
func (l *RefList) RemoveAt(i int) (string, error) {
	if i < 0 || i >= len(l.ids) {
		return "", fmt.Errorf("%w: remove at %d of %d", ErrIndexOutOfRange, i, len(l.ids))
	}
	id := l.ids[i]
	l.ids = slices.Delete(l.ids, i, i+1)
	return id, nil
}

// Remove removes id by value. Removing an absent id is a no-op.
func (l *RefList) Remove(id string) {
	if i := slices.Index(l.ids, id); i >= 0 {
		l.ids = slices.Delete(l.ids, i, i+1)
	}
}

// MoveAt moves the id at from to position to, shifting neighbors.
func (l *RefList) MoveAt(from, to int) error {
	if from < 0 || from >= len(l.ids) {
		return fmt.Errorf("%w: move from %d of %d", ErrIndexOutOfRange, from, len(l.ids))
	}
	if to < 0 || to >= len(l.ids) {
		return fmt.Errorf("%w: move to %d of %d", ErrIndexOutOfRange, to, len(l.ids))
	}
	if from == to {
		return nil
	}
	id := l.ids[from]
	l.ids = slices.Delete(l.ids, from, from+1)
	l.ids = slices.Insert(l.ids, to, id)
	return nil
}
