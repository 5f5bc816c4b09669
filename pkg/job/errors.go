package job

import "errors"

// ErrCursorMismatch is returned when an adapter is handed a Cursor variant
// it does not accept (§7: "adapter given wrong cursor variant — fatal:
// Stopped (programmer error)").
var ErrCursorMismatch = errors.New("cursor variant mismatch")
