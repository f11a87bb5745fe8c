package core

// Verdict is what a mock closure tells the dispatch preamble to do: run
// the real body with (possibly different) arguments, or skip it and
// produce a result.
type Verdict[A, R any] struct {
	kind   verdictKind
	args   A
	result R
}

// Continue returns a verdict that runs the real body with args.
// The result type comes first so it can be given explicitly while the
// argument type is inferred: Continue[string](MockFArgs{...}).
func Continue[R, A any](args A) Verdict[A, R] {
	return Verdict[A, R]{kind: verdictContinue, args: args}
}

// Return returns a verdict that skips the real body and yields result.
// For asynchronous functions result is a Task the caller still awaits.
func Return[A, R any](result R) Verdict[A, R] {
	return Verdict[A, R]{kind: verdictReturn, result: result}
}

// Args returns the substituted arguments and whether the verdict is Continue.
func (v Verdict[A, R]) Args() (A, bool) {
	return v.args, v.kind == verdictContinue
}

// IsReturn reports whether the verdict short-circuits the real body.
func (v Verdict[A, R]) IsReturn() bool {
	return v.kind == verdictReturn
}

// Result returns the substituted result and whether the verdict is Return.
func (v Verdict[A, R]) Result() (R, bool) {
	return v.result, v.kind == verdictReturn
}

// String names the variant.
func (v Verdict[A, R]) String() string {
	switch v.kind {
	case verdictContinue:
		return "Continue"
	case verdictReturn:
		return "Return"
	default:
		return "Invalid"
	}
}

type verdictKind int

// Verdict kinds. The zero Verdict is invalid and rejected at dispatch.
const (
	verdictInvalid verdictKind = iota
	verdictContinue
	verdictReturn
)
