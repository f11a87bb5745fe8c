package core

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the runtime id of the calling goroutine.
// Ids are assigned monotonically and never reused within a process.
func goroutineID() uint64 {
	var buf [goroutineHeaderLen]byte

	n := runtime.Stack(buf[:], false)
	// "goroutine 18 [running]:\n..."
	header := bytes.TrimPrefix(buf[:n], goroutinePrefix)

	end := bytes.IndexByte(header, ' ')
	if end < 0 {
		panic("mockable: cannot parse goroutine header: " + string(buf[:n]))
	}

	id, err := strconv.ParseUint(string(header[:end]), 10, 64)
	if err != nil {
		panic("mockable: cannot parse goroutine id: " + err.Error())
	}

	return id
}

// unexported constants.
const (
	goroutineHeaderLen = 64
)

// unexported variables.
var (
	//nolint:gochecknoglobals // immutable prefix
	goroutinePrefix = []byte("goroutine ")
)
