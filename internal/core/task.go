package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Task is a deferred computation: the asynchronous result of a mockable
// function. Nothing runs until the first Await; the outcome is memoized.
type Task[T any] struct {
	state *taskState[T]
}

// AwaitAll awaits every task concurrently and returns their values in
// order, or the first error.
func AwaitAll[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	values := make([]T, len(tasks))

	group, groupCtx := errgroup.WithContext(ctx)

	for i, task := range tasks {
		group.Go(func() error {
			value, err := task.Await(groupCtx)
			if err != nil {
				return err
			}

			values[i] = value

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return values, nil
}

// Defer wraps fn in a Task without running it.
func Defer[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	return Task[T]{state: &taskState[T]{run: fn, done: make(chan struct{})}}
}

// Ready returns a Task already completed with value.
func Ready[T any](value T) Task[T] {
	state := &taskState[T]{done: make(chan struct{}), value: value}
	state.started.Store(true)
	close(state.done)

	return Task[T]{state: state}
}

// Await runs the computation on first use and waits for its outcome.
// The first caller runs it with its own context; other callers wait for
// that run or for their context to end, whichever comes first.
// If the computation panics, the first caller sees the panic and later
// callers get ErrTaskPanicked.
// Awaiting the zero Task returns the zero value.
func (t Task[T]) Await(ctx context.Context) (T, error) {
	if t.state == nil {
		var zero T

		return zero, nil
	}

	s := t.state
	if s.started.CompareAndSwap(false, true) {
		func() {
			defer close(s.done)
			defer func() {
				if r := recover(); r != nil {
					s.err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)

					panic(r)
				}
			}()

			s.value, s.err = s.run(ctx)
		}()

		return s.value, s.err
	}

	select {
	case <-s.done:
		return s.value, s.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Started reports whether the computation has begun.
func (t Task[T]) Started() bool {
	return t.state != nil && t.state.started.Load()
}

type taskState[T any] struct {
	run     func(ctx context.Context) (T, error)
	started atomic.Bool
	done    chan struct{}
	value   T
	err     error
}

// Exported variables.
var (
	// ErrTaskPanicked is returned by Await after the computation panicked.
	ErrTaskPanicked = errors.New("task panicked")
)
