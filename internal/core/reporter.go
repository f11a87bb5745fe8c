package core

// TestReporter is the minimal interface mockable needs from test frameworks.
// testing.T and testing.B implement it. Reporters that also offer
// Cleanup(func()) get their mocks cleared automatically at test end.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}
