package mockable_test

import (
	"context"
	"strconv"

	"github.com/toejough/mockable"
)

//go:generate go run ./mockinject scale_test.go

// Render formats n once awaited.
//
//mockable:inject
func Render(n int) mockable.Task[string] {
	mockArgs, mockRes, mockDone := MockRender().Intercept(MockRenderArgs{N: n})
	if mockDone {
		return mockRes
	}

	n = mockArgs.N

	return mockable.Defer(func(context.Context) (string, error) {
		return strconv.Itoa(n), nil
	})
}

// Scale multiplies a by b.
//
//mockable:inject
func Scale(a, b int) int {
	mockArgs, mockRes, mockDone := MockScale().Intercept(MockScaleArgs{A: a, B: b})
	if mockDone {
		return mockRes
	}

	a, b = mockArgs.A, mockArgs.B

	return a * b
}
