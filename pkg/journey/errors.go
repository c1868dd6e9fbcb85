package journey

import "errors"

// ErrUserNotFound is returned when a progress store has no record for the
// requested user.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidState is returned when a write carries a state outside the
// closed six-value set.
var ErrInvalidState = errors.New("invalid state value")

// ErrUnknownNode is returned when a write targets a node id absent from
// the loaded definition.
var ErrUnknownNode = errors.New("unknown node")
