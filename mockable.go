// Package mockable replaces the behavior of functions and methods for the
// duration of a test, at the call site, without changing their signatures.
//
// A function opts in by starting with a dispatch preamble (written by the
// mockinject tool) that asks the registry of the current test whether a
// mock is active. Tests register mocks through the typed handle the tool
// generates next to the function:
//
//	pkg.MockAdd().SetMock(t, func(args pkg.MockAddArgs) mockable.Verdict[pkg.MockAddArgs, int] {
//		return mockable.Return[pkg.MockAddArgs](42)
//	})
//
// This is the public API entry point. Implementation lives in internal/core.
package mockable

import (
	"cmp"
	"context"
	"reflect"

	"github.com/toejough/mockable/internal/core"
)

// Cell hands out at most one pointer to its value until reset.
type Cell[T any] = core.Cell[T]

// Func is the typed handle of one mockable function or instantiation.
type Func[A, R any] = core.Func[A, R]

// Key identifies a mock slot: a site plus the concrete instantiation.
type Key = core.Key

// Mock is the replacement closure shape for a Func[A, R].
type Mock[A, R any] = core.Mock[A, R]

// Registry holds the active mocks of one test.
type Registry = core.Registry

// Site is the materialized identity of one mockable function or method.
type Site = core.Site

// SiteOption configures a Site at declaration.
type SiteOption = core.SiteOption

// Task is a deferred computation: the asynchronous result of a mockable function.
type Task[T any] = core.Task[T]

// TestReporter is the minimal interface mockable needs from test frameworks.
type TestReporter = core.TestReporter

// Verdict tells the dispatch preamble whether to run the real body.
type Verdict[A, R any] = core.Verdict[A, R]

// Exported variables.
var (
	// ErrAlreadyBorrowed is returned by Cell.TryBorrow and TryWith.
	ErrAlreadyBorrowed = core.ErrAlreadyBorrowed
	// ErrTaskPanicked is returned by Task.Await after the computation panicked.
	ErrTaskPanicked = core.ErrTaskPanicked
)

// AwaitAll awaits every task concurrently and returns their values in order.
func AwaitAll[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	return core.AwaitAll(ctx, tasks...)
}

// Compare orders two cells by their values.
func Compare[T cmp.Ordered](a, b *Cell[T]) int {
	return core.Compare(a, b)
}

// Const marks a site that is evaluated before mocks can exist.
func Const() SiteOption {
	return core.Const()
}

// Continue returns a verdict that runs the real body with args.
func Continue[R, A any](args A) Verdict[A, R] {
	return core.Continue[R](args)
}

// Defer wraps fn in a Task without running it.
func Defer[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	return core.Defer(fn)
}

// Equal reports whether two cells hold equal values.
func Equal[T comparable](a, b *Cell[T]) bool {
	return core.Equal(a, b)
}

// ExclusiveResult marks a site whose result hands out exclusive access.
func ExclusiveResult() SiteOption {
	return core.ExclusiveResult()
}

// ForTest returns the Registry for the given test, creating one if needed.
func ForTest(t TestReporter) *Registry {
	return core.ForTest(t)
}

// NewCell returns a free cell holding value.
func NewCell[T any](value T) *Cell[T] {
	return core.NewCell(value)
}

// NewSite declares a mockable site.
func NewSite(name string, opts ...SiteOption) *Site {
	return core.NewSite(name, opts...)
}

// Of returns the handle for site at the given type arguments.
func Of[A, R any](site *Site, typeArgs ...reflect.Type) *Func[A, R] {
	return core.Of[A, R](site, typeArgs...)
}

// Ready returns a Task already completed with value.
func Ready[T any](value T) Task[T] {
	return core.Ready(value)
}

// Return returns a verdict that skips the real body and yields result.
func Return[A, R any](result R) Verdict[A, R] {
	return core.Return[A](result)
}

// TryWith borrows c for the duration of fn.
func TryWith[T, R any](c *Cell[T], fn func(value *T) R) (R, error) {
	return core.TryWith(c, fn)
}

// With borrows c for the duration of fn and panics if it is already borrowed.
func With[T, R any](c *Cell[T], fn func(value *T) R) R {
	return core.With(c, fn)
}
