package sentinel

import "errors"

// Sentinel errors for persistence facts. Stores return these (optionally wrapped)
// so services can translate them into licensing error codes.
//
//   - ErrNotFound: row does not exist
//   - ErrConflict: a uniqueness constraint rejected the write (second open detain,
//     second live license for a driver and class, second result for an appointment)
//   - ErrInvalidState: row exists but is in the wrong state for the write
//   - ErrUnavailable: the store cannot be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
