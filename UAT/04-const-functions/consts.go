// Package consts has functions evaluated while the package initializes,
// before any test can register a mock.
package consts

//go:generate go run ../../mockinject

// Exported variables.
var (
	//nolint:gochecknoglobals // computed during package initialization on purpose
	BufferSize = Size(4)
)

// Size returns the buffer size for n items.
//
//mockable:const
func Size(n int) int {
	return n * 1024
}
