package core

import (
	"fmt"
	"reflect"
)

// Func is the typed handle for one mockable function or one concrete
// instantiation of a generic function. A is the argument tuple (receiver
// first for methods) and R the result.
type Func[A, R any] struct {
	key Key
}

// Mock is the replacement closure shape for a Func[A, R].
type Mock[A, R any] func(args A) Verdict[A, R]

// Of returns the handle for site at the given type arguments. Non-generic
// targets pass no type arguments; generic targets pass one reflect.Type per
// type parameter, in declaration order.
func Of[A, R any](site *Site, typeArgs ...reflect.Type) *Func[A, R] {
	return &Func[A, R]{key: newKey(site, typeArgs)}
}

// Dispatch is called by the injected preamble with the call's arguments.
// It reports false when no mock is active for this key on the calling
// goroutine; otherwise it runs the mock and returns its verdict.
//
// Const sites never dispatch.
func (f *Func[A, R]) Dispatch(args A) (Verdict[A, R], bool) {
	var none Verdict[A, R]

	if f.key.site.constant || liveSlots.Load() == 0 {
		return none, false
	}

	reg, gid := current()
	if reg == nil {
		return none, false
	}

	entry, release, ok := reg.enter(f.key, gid)
	if !ok {
		return none, false
	}
	defer release()

	mock, ok := entry.mock.(Mock[A, R])
	if !ok {
		panic(fmt.Sprintf("mockable: mock for %s has type %T, want %T", f.key, entry.mock, Mock[A, R](nil)))
	}

	verdict := mock(args)

	switch verdict.kind {
	case verdictContinue:
	case verdictReturn:
		if f.key.site.exclusive && !entry.raw {
			refs := lentFrom(args, references(verdict.result))
			if ref, aliased := reg.handOut(entry, verdict.result, refs); aliased {
				panic(fmt.Sprintf(
					"mockable: mock for %s returned reference %#x a second time; "+
						"hand out fresh values, or register with MockRaw and hand them out of a Cell",
					f.key, ref,
				))
			}
		}
	default:
		panic("mockable: mock for " + f.key.String() + " returned a zero Verdict; use Continue or Return")
	}

	return verdict, true
}

// Intercept folds Dispatch into the three values the preamble needs: the
// effective arguments, the substituted result, and whether to return it
// instead of running the real body.
func (f *Func[A, R]) Intercept(args A) (A, R, bool) {
	verdict, ok := f.Dispatch(args)
	if !ok {
		var none R

		return args, none, false
	}

	if result, done := verdict.Result(); done {
		return args, result, true
	}

	next, _ := verdict.Args()

	return next, verdict.result, false
}

// Key returns the slot key of this handle.
func (f *Func[A, R]) Key() Key {
	return f.key
}

// MockRaw registers mock like SetMock but without the exclusive-result
// alias check.
//
// Safety: the caller guarantees that any reference inside a Return payload
// is not used through another path while the call site still uses the
// mocked result. Typical ways to keep that promise are calling the mocked
// function only once, or handing references out of a Cell. A broken
// promise is not detected.
func (f *Func[A, R]) MockRaw(t TestReporter, mock Mock[A, R]) {
	t.Helper()

	f.register(t, mock, true)
}

// Mocked reports whether a mock is registered for this key in t's registry.
func (f *Func[A, R]) Mocked(t TestReporter) bool {
	reg, ok := lookup(t)

	return ok && reg.has(f.key)
}

// SetMock registers mock as the replacement for this key for the rest of
// t, replacing any earlier registration. The calling goroutine is bound to
// t's registry.
//
// Registrations against a Const site are accepted and never consulted.
func (f *Func[A, R]) SetMock(t TestReporter, mock Mock[A, R]) {
	t.Helper()

	f.register(t, mock, false)
}

// Unmock removes the registration for this key in t's registry, if any.
func (f *Func[A, R]) Unmock(t TestReporter) {
	reg, ok := lookup(t)
	if !ok {
		return
	}

	reg.remove(f.key)
}

func (f *Func[A, R]) register(t TestReporter, mock Mock[A, R], raw bool) {
	t.Helper()

	if mock == nil {
		t.Fatalf("mockable: nil mock for %s", f.key)

		return
	}

	ForTest(t).set(f.key, mock, raw)
}

// lentFrom drops the references that point into memory reachable from args:
// handing back what the caller passed in lends nothing new.
func lentFrom[A any](args A, refs []uintptr) []uintptr {
	if len(refs) == 0 {
		return refs
	}

	inputs := reachable(args)

	kept := refs[:0]

	for _, ref := range refs {
		if !inputs.contains(ref) {
			kept = append(kept, ref)
		}
	}

	return kept
}
