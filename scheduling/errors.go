package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidTransition is returned when a reservation status change is
	// not allowed from its current state.
	ErrInvalidTransition = errors.New("invalid reservation transition")

	// ErrForbidden is returned when the acting user may not perform the
	// requested transition.
	ErrForbidden = errors.New("actor not allowed to perform this transition")

	// ErrConflict is returned when a slot is already held by a pending or
	// approved reservation.
	ErrConflict = errors.New("time slot is no longer available")

	// ErrNotFound is returned when a referenced area or reservation does
	// not exist.
	ErrNotFound = errors.New("record not found")
)

// ValidationError maps field names to human-readable messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v[k]))
	}
	return strings.Join(parts, "; ")
}
