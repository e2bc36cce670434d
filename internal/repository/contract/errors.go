package contract

import "errors"

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
// Lookup-or-create callers treat it as "someone else won the race, fetch".
var ErrDuplicate = errors.New("duplicate record")
