//mockable:inject

// Package twice marks its functions both per file and per function.
package twice

//go:generate go run ../../mockinject

// Double is covered by the file directive and its own.
//
//mockable:inject
func Double(x uint32) uint32 {
	mockArgs, mockRes, mockDone := MockDouble().Intercept(MockDoubleArgs{X: x})
	if mockDone {
		return mockRes
	}

	x = mockArgs.X

	return x * 2
}
