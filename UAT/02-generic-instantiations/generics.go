// Package generics has a generic function whose instantiations are mocked
// independently.
package generics

import "fmt"

//go:generate go run ../../mockinject

// Describe renders v with its dynamic type.
//
//mockable:inject
func Describe[T any](v T) string {
	mockArgs, mockRes, mockDone := MockDescribe[T]().Intercept(MockDescribeArgs[T]{V: v})
	if mockDone {
		return mockRes
	}

	v = mockArgs.V

	return fmt.Sprintf("%T(%v)", v, v)
}

// Pick returns a when first is set, otherwise b.
//
//mockable:inject
func Pick[K comparable, V any](first bool, a, b map[K]V) map[K]V {
	mockArgs, mockRes, mockDone := MockPick[K, V]().Intercept(MockPickArgs[K, V]{First: first, A: a, B: b})
	if mockDone {
		return mockRes
	}

	first, a, b = mockArgs.First, mockArgs.A, mockArgs.B

	if first {
		return a
	}

	return b
}
