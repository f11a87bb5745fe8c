package basic

import "sync/atomic"

// unexported variables.
var (
	//nolint:gochecknoglobals // observable side effect of the real Reset body
	resets atomic.Int64
)
