// Package history implements the bounded linear undo history used by the
// edit session.
//
// A Ring stores buffer snapshots in a fixed-size backing array. The logical
// sequence (oldest first) starts at head and spans length slots, wrapping
// around the array. The cursor is a logical index into that sequence and
// always names the snapshot equal to the current buffer.
//
// All index arithmetic lives in slot; nothing else in the package computes
// a physical position.
package history

// DefaultCapacity is the number of snapshots retained when no explicit
// capacity is given.
const DefaultCapacity = 50

// Ring is a fixed-capacity history of string snapshots with a cursor.
//
// The zero value is not usable; construct with New.
type Ring struct {
	slots  []string
	head   int // physical index of the oldest snapshot
	length int // number of live snapshots
	cursor int // logical index of the current snapshot
}

// New returns a ring holding the single snapshot initial. A capacity below
// one selects DefaultCapacity.
func New(capacity int, initial string) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Ring{slots: make([]string, capacity)}
	r.slots[0] = initial
	r.length = 1
	return r
}

// slot maps a logical index (0 = oldest) to a physical array index.
func (r *Ring) slot(i int) int {
	return (r.head + i) % len(r.slots)
}

// Cap reports the maximum number of snapshots retained.
func (r *Ring) Cap() int { return len(r.slots) }

// Len reports the number of snapshots currently retained.
func (r *Ring) Len() int { return r.length }

// Cursor reports the logical index of the current snapshot.
func (r *Ring) Cursor() int { return r.cursor }

// Current returns the snapshot under the cursor.
func (r *Ring) Current() string { return r.slots[r.slot(r.cursor)] }

// At returns the snapshot at logical index i (0 = oldest). It panics when i
// is out of range, like a slice index would.
func (r *Ring) At(i int) string {
	if i < 0 || i >= r.length {
		panic("history: index out of range")
	}
	return r.slots[r.slot(i)]
}

// Entries returns a copy of the retained snapshots, oldest first.
func (r *Ring) Entries() []string {
	out := make([]string, r.length)
	for i := range out {
		out[i] = r.slots[r.slot(i)]
	}
	return out
}

// Commit records s as the newest snapshot.
//
// Snapshots after the cursor are discarded first. When the ring is full the
// oldest snapshot is evicted. The cursor ends on s in every case.
func (r *Ring) Commit(s string) {
	// Drop the redo branch.
	for i := r.cursor + 1; i < r.length; i++ {
		r.slots[r.slot(i)] = ""
	}
	r.length = r.cursor + 1

	if r.length == len(r.slots) {
		r.slots[r.head] = ""
		r.head = r.slot(1)
		r.length--
	}
	r.slots[r.slot(r.length)] = s
	r.length++
	r.cursor = r.length - 1
}

// CanUndo reports whether Undo would move the cursor.
func (r *Ring) CanUndo() bool { return r.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (r *Ring) CanRedo() bool { return r.cursor < r.length-1 }

// Undo moves the cursor one snapshot back and returns that snapshot.
func (r *Ring) Undo() (string, bool) {
	if !r.CanUndo() {
		return r.Current(), false
	}
	r.cursor--
	return r.Current(), true
}

// Redo moves the cursor one snapshot forward and returns that snapshot.
func (r *Ring) Redo() (string, bool) {
	if !r.CanRedo() {
		return r.Current(), false
	}
	r.cursor++
	return r.Current(), true
}
