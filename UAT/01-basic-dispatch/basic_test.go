package basic_test

import (
	"fmt"
	"sync"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/mockable"
	basic "github.com/toejough/mockable/UAT/01-basic-dispatch"
)

// TestIndependentTests_DoNotLeak runs 64 parallel subtests, each on its own
// goroutine, that mock the same function with their own literal.
func TestIndependentTests_DoNotLeak(t *testing.T) {
	t.Parallel()

	const numTests = 64

	for i := range numTests {
		want := fmt.Sprintf("mocked %02d", i)

		t.Run(fmt.Sprintf("test%02d", i), func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(basic.Greet("bob")).To(Equal("hello bob"), "unmocked before registering")

			basic.MockGreet().SetMock(t, func(basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
				return mockable.Return[basic.MockGreetArgs](want)
			})

			g.Expect(basic.Greet("bob")).To(Equal(want))
		})
	}
}

func TestFreshTest_SeesRealBehavior(t *testing.T) {
	t.Parallel()

	t.Run("mocks", func(t *testing.T) {
		basic.MockGreet().SetMock(t, func(basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
			return mockable.Return[basic.MockGreetArgs]("leaked?")
		})
	})

	t.Run("never unmocks but runs later", func(t *testing.T) {
		NewWithT(t).Expect(basic.Greet("amy")).To(Equal("hello amy"))
	})
}

func TestContinue_SubstitutesArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	basic.MockFirst().SetMock(t, func(args basic.MockFirstArgs) mockable.Verdict[basic.MockFirstArgs, string] {
		return mockable.Continue[string](basic.MockFirstArgs{A: args.B, B: args.A})
	})

	g.Expect(basic.First("a", "b")).To(Equal("b"), "the real body ran on swapped arguments")
}

func TestIgnoredArgument_ReachesTheMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var labels []string

	basic.MockTally().SetMock(t, func(args basic.MockTallyArgs) mockable.Verdict[basic.MockTallyArgs, int] {
		labels = append(labels, args.MockArg0)

		return mockable.Continue[int](args)
	})

	g.Expect(basic.Tally("apples", 3)).To(Equal(6))
	g.Expect(basic.Tally("pears", 4)).To(Equal(8))
	g.Expect(labels).To(Equal([]string{"apples", "pears"}))
}

func TestNoArgsNoResults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	before := basic.Resets()

	basic.MockReset().SetMock(t, func(basic.MockResetArgs) mockable.Verdict[basic.MockResetArgs, struct{}] {
		return mockable.Return[basic.MockResetArgs](struct{}{})
	})

	basic.Reset()
	g.Expect(basic.Resets()).To(Equal(before), "a Return verdict skips the body")

	basic.MockReset().Unmock(t)
	basic.Reset()
	g.Expect(basic.Resets()).To(BeNumerically(">", before))
}

func TestOverwriteAndUnmock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	greet := basic.MockGreet()

	greet.SetMock(t, func(basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
		return mockable.Return[basic.MockGreetArgs]("one")
	})
	greet.SetMock(t, func(basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
		return mockable.Return[basic.MockGreetArgs]("two")
	})

	g.Expect(basic.Greet("x")).To(Equal("two"))
	g.Expect(greet.Mocked(t)).To(BeTrue())

	greet.Unmock(t)

	g.Expect(basic.Greet("x")).To(Equal("hello x"))
	g.Expect(greet.Mocked(t)).To(BeFalse())
}

func TestMocks_FollowRegistryGoroutines(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	basic.MockGreet().SetMock(t, func(basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
		return mockable.Return[basic.MockGreetArgs]("bound")
	})

	var (
		wg             sync.WaitGroup
		bound, unbound string
	)

	wg.Add(2)

	mockable.ForTest(t).Go(func() {
		defer wg.Done()

		bound = basic.Greet("x")
	})

	go func() {
		defer wg.Done()

		unbound = basic.Greet("x")
	}()

	wg.Wait()

	g.Expect(bound).To(Equal("bound"))
	g.Expect(unbound).To(Equal("hello x"), "goroutines the test did not bind see real behavior")
}

func TestMock_CanCallTheRealBody(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	basic.MockGreet().SetMock(t, func(args basic.MockGreetArgs) mockable.Verdict[basic.MockGreetArgs, string] {
		return mockable.Return[basic.MockGreetArgs]("<" + basic.Greet(args.Name) + ">")
	})

	g.Expect(basic.Greet("x")).To(Equal("<hello x>"))
}
