package core

import (
	"cmp"
	"errors"
	"fmt"
)

// Cell hands out at most one pointer to the value it owns until it is
// reset. It lets a mock closure that only captured the cell produce an
// exclusive *T for a mocked signature, with the exclusivity checked at
// runtime by a flag instead of by convention.
//
// The flag is not synchronized; a Cell is for use on one goroutine.
// The zero Cell is free and holds the zero T.
type Cell[T any] struct {
	borrowed bool
	value    T
}

// Compare orders two cells by their values. It borrows both for the
// duration of the comparison and panics if either is borrowed.
func Compare[T cmp.Ordered](a, b *Cell[T]) int {
	return With(a, func(x *T) int {
		return With(b, func(y *T) int {
			return cmp.Compare(*x, *y)
		})
	})
}

// Equal reports whether two cells hold equal values. It borrows both for
// the duration of the comparison and panics if either is borrowed.
func Equal[T comparable](a, b *Cell[T]) bool {
	return With(a, func(x *T) bool {
		return With(b, func(y *T) bool {
			return *x == *y
		})
	})
}

// NewCell returns a free cell holding value.
func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// TryWith borrows c, calls fn with the pointer and frees c again when fn
// returns or panics. It fails with ErrAlreadyBorrowed if c is borrowed.
// fn must not retain the pointer beyond its return.
func TryWith[T, R any](c *Cell[T], fn func(value *T) R) (R, error) {
	ptr, err := c.TryBorrow()
	if err != nil {
		var zero R

		return zero, err
	}

	defer c.release()

	return fn(ptr), nil
}

// With is TryWith that panics if c is already borrowed.
func With[T, R any](c *Cell[T], fn func(value *T) R) R {
	result, err := TryWith(c, fn)
	if err != nil {
		panic(err)
	}

	return result
}

// Borrow is TryBorrow that panics if c is already borrowed.
func (c *Cell[T]) Borrow() *T {
	ptr, err := c.TryBorrow()
	if err != nil {
		panic(err)
	}

	return ptr
}

// Borrowed reports whether a pointer is outstanding.
func (c *Cell[T]) Borrowed() bool {
	return c.borrowed
}

// Clone returns a free cell holding a copy of the value. The copy is
// shallow. It panics if c is borrowed.
func (c *Cell[T]) Clone() *Cell[T] {
	return With(c, func(value *T) *Cell[T] {
		return NewCell(*value)
	})
}

// GetMut returns a pointer to the value without touching the flag.
// The caller asserts it has exclusive use of c: no pointer from an earlier
// Borrow is still in use.
func (c *Cell[T]) GetMut() *T {
	return &c.value
}

// GoString formats the cell for %#v, without panicking when borrowed.
func (c *Cell[T]) GoString() string {
	if c.borrowed {
		return fmt.Sprintf("&Cell[%T]{<borrowed>}", c.value)
	}

	return fmt.Sprintf("&Cell[%T]{%#v}", c.value, c.value)
}

// IntoInner returns the value. The cell should not be used afterwards.
func (c *Cell[T]) IntoInner() T {
	return c.value
}

// Reset frees the cell.
// The caller asserts it has exclusive use of c: no pointer from an earlier
// Borrow is still in use.
func (c *Cell[T]) Reset() {
	c.borrowed = false
}

// String formats the cell, showing a placeholder instead of panicking when
// it is borrowed.
func (c *Cell[T]) String() string {
	if c.borrowed {
		return "Cell { <borrowed> }"
	}

	return fmt.Sprintf("Cell { %v }", c.value)
}

// TryBorrow marks the cell borrowed and returns a pointer to its value.
// It fails with ErrAlreadyBorrowed if a pointer is already outstanding;
// the next borrow needs Reset first.
func (c *Cell[T]) TryBorrow() (*T, error) {
	if c.borrowed {
		return nil, fmt.Errorf("%w: Cell[%T]", ErrAlreadyBorrowed, c.value)
	}

	c.borrowed = true

	return &c.value, nil
}

func (c *Cell[T]) release() {
	c.borrowed = false
}

// Exported variables.
var (
	// ErrAlreadyBorrowed is returned when a Cell is borrowed while a pointer
	// from an earlier borrow is still outstanding.
	ErrAlreadyBorrowed = errors.New("already borrowed")
)
