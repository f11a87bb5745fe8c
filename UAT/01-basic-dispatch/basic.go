// Package basic holds plain functions whose behavior tests replace per test.
package basic

//go:generate go run ../../mockinject

// Greet is the canonical mocked function.
//
//mockable:inject
func Greet(name string) string {
	mockArgs, mockRes, mockDone := MockGreet().Intercept(MockGreetArgs{Name: name})
	if mockDone {
		return mockRes
	}

	name = mockArgs.Name

	return "hello " + name
}

// First returns its first argument.
//
//mockable:inject
func First(a, b string) string {
	mockArgs, mockRes, mockDone := MockFirst().Intercept(MockFirstArgs{A: a, B: b})
	if mockDone {
		return mockRes
	}

	a, b = mockArgs.A, mockArgs.B

	return a
}

// Tally doubles n. Its label is ignored by the real body but still reaches
// mocks.
//
//mockable:inject
func Tally(mockArg0 string, n int) int {
	mockArgs, mockRes, mockDone := MockTally().Intercept(MockTallyArgs{MockArg0: mockArg0, N: n})
	if mockDone {
		return mockRes
	}

	mockArg0, n = mockArgs.MockArg0, mockArgs.N

	return n * 2
}

// Reset has neither arguments nor results.
//
//mockable:inject
func Reset() {
	_, _, mockDone := MockReset().Intercept(MockResetArgs{})
	if mockDone {
		return
	}

	resets.Add(1)
}

// Resets reports how often the real Reset body ran.
func Resets() int64 {
	return resets.Load()
}
