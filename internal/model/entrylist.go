package model

import "strings"

// Entry is a structured list record with a stable identity. WithField
// returns a copy with one field replaced; ok is false for unknown keys.
type Entry[T any] interface {
	EntryID() string
	WithField(key, value string) (T, bool)
}

// The list operations below never modify their input. Each returns either
// the input unchanged or a freshly allocated slice.

// Add appends v to a copy of l.
func Add[T any](l []T, v T) []T {
	out := make([]T, 0, len(l)+1)
	out = append(out, l...)
	return append(out, v)
}

// Update replaces field key of the record at index. Out-of-range indices
// and unknown keys leave l unchanged.
func Update[T Entry[T]](l []T, index int, key, value string) []T {
	if index < 0 || index >= len(l) {
		return l
	}
	updated, ok := l[index].WithField(key, value)
	if !ok {
		return l
	}
	out := append([]T{}, l...)
	out[index] = updated
	return out
}

// Remove deletes the record at index; later records shift down by one.
func Remove[T any](l []T, index int) []T {
	if index < 0 || index >= len(l) {
		return l
	}
	out := make([]T, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...)
}

// Move swaps the record at index with its neighbour in direction (-1 up,
// +1 down). Moves past either end are no-ops.
func Move[T any](l []T, index, direction int) []T {
	if direction != -1 && direction != 1 {
		return l
	}
	target := index + direction
	if index < 0 || index >= len(l) || target < 0 || target >= len(l) {
		return l
	}
	out := append([]T{}, l...)
	out[index], out[target] = out[target], out[index]
	return out
}

// AddUnique trims value and appends it unless it is blank or already
// present under case-insensitive comparison.
func AddUnique(l []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || ContainsFold(l, value) {
		return l
	}
	return Add(l, value)
}

// ContainsFold reports whether l holds v, ignoring case.
func ContainsFold(l []string, v string) bool {
	for _, s := range l {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the entry with the given id, or -1.
func IndexOf[T Entry[T]](l []T, id string) int {
	for i, e := range l {
		if e.EntryID() == id {
			return i
		}
	}
	return -1
}
