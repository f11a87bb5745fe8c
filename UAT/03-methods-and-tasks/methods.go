// Package methods has methods on a generic type, some of them asynchronous.
package methods

import (
	"context"
	"fmt"

	"github.com/toejough/mockable"
)

//go:generate go run ../../mockinject

// Store holds one value of any type and counts its fetches.
type Store[T any] struct {
	Value   T
	Fetches int
}

// Label is a method with a value receiver.
//
//mockable:inject
func (s Store[T]) Label(prefix string) string {
	mockArgs, mockRes, mockDone := MockStoreLabel[T]().Intercept(MockStoreLabelArgs[T]{Recv: s, Prefix: prefix})
	if mockDone {
		return mockRes
	}

	s, prefix = mockArgs.Recv, mockArgs.Prefix

	return fmt.Sprintf("%s%v", prefix, s.Value)
}

// Fetch is asynchronous: it returns a task that records the fetch when awaited.
//
//mockable:inject
func (s *Store[T]) Fetch(key string) mockable.Task[string] {
	mockArgs, mockRes, mockDone := MockStoreFetch[T]().Intercept(MockStoreFetchArgs[T]{Recv: s, Key: key})
	if mockDone {
		return mockRes
	}

	s, key = mockArgs.Recv, mockArgs.Key

	return mockable.Defer(func(context.Context) (string, error) {
		s.Fetches++

		return fmt.Sprintf("%s=%v", key, s.Value), nil
	})
}

// Swap replaces the stored value and returns the old one and whether it
// differed.
//
//mockable:inject
func (s *Store[T]) Swap(next T, differ func(a, b T) bool) (old T, changed bool) {
	mockArgs, mockRes, mockDone := MockStoreSwap[T]().Intercept(MockStoreSwapArgs[T]{Recv: s, Next: next, Differ: differ})
	if mockDone {
		return mockRes.Old, mockRes.Changed
	}

	s, next, differ = mockArgs.Recv, mockArgs.Next, mockArgs.Differ

	old, s.Value = s.Value, next

	return old, differ(old, next)
}
