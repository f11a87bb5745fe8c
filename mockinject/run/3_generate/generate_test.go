package generate_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	load "github.com/toejough/mockable/mockinject/run/1_load"
	detect "github.com/toejough/mockable/mockinject/run/2_detect"
	generate "github.com/toejough/mockable/mockinject/run/3_generate"
)

func TestFile_InsertsPreambleAndSidecar(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "calc.go", `package calc

//mockable:inject
func Add(a, b int) int {
	return a + b
}
`)

	source := string(result.Source)
	g.Expect(result.Injected).To(Equal(1))
	g.Expect(source).To(ContainSubstring(
		"\tmockArgs, mockRes, mockDone := MockAdd().Intercept(MockAddArgs{A: a, B: b})\n" +
			"\tif mockDone {\n" +
			"\t\treturn mockRes\n" +
			"\t}\n" +
			"\n" +
			"\ta, b = mockArgs.A, mockArgs.B\n" +
			"\n" +
			"\treturn a + b\n"))
	g.Expect(source).To(ContainSubstring("//mockable:inject\nfunc Add(a, b int) int {"))

	sidecar := string(result.Sidecar)
	g.Expect(sidecar).To(HavePrefix("// Code generated by mockinject. DO NOT EDIT.\n\npackage calc\n"))
	g.Expect(sidecar).To(ContainSubstring(`"github.com/toejough/mockable"`))
	g.Expect(sidecar).NotTo(ContainSubstring(`"reflect"`))
	g.Expect(sidecar).To(MatchRegexp(`type MockAddArgs struct \{\n\tA\s+int\n\tB\s+int\n\}`))
	g.Expect(sidecar).To(ContainSubstring("func MockAdd() *mockable.Func[MockAddArgs, int] {"))
	g.Expect(sidecar).To(ContainSubstring("return mockable.Of[MockAddArgs, int](mockAddSite)"))
	g.Expect(sidecar).To(ContainSubstring(`mockAddSite = mockable.NewSite("calc.Add")`))
}

func TestFile_IsIdempotent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first := mustGenerate(t, "calc.go", `package calc

//mockable:inject
func Add(a, b int) int {
	return a + b
}
`)

	second := mustGenerate(t, "calc.go", string(first.Source))

	g.Expect(second.Injected).To(BeZero())
	g.Expect(string(second.Source)).To(Equal(string(first.Source)))
	g.Expect(string(second.Sidecar)).To(Equal(string(first.Sidecar)))
}

func TestFile_DoubleDirectiveInjectsOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "twice.go", `package twice

//mockable:inject
//mockable:inject
func Four() int {
	return 4
}
`)

	g.Expect(result.Injected).To(Equal(1))
	g.Expect(string(result.Source)).To(ContainSubstring(
		"\t_, mockRes, mockDone := MockFour().Intercept(MockFourArgs{})\n" +
			"\tif mockDone {\n" +
			"\t\treturn mockRes\n" +
			"\t}\n" +
			"\n" +
			"\treturn 4\n"))
}

func TestFile_NamesIgnoredAndUnnamedParameters(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "ignore.go", `package ignore

//mockable:inject
func Ignore(_ string, n int) int {
	return n
}

//mockable:inject
func Unnamed(int, string) {
}

//mockable:inject
func (*Thing) Poke() {
}

type Thing struct{}
`)

	source := string(result.Source)
	g.Expect(source).To(ContainSubstring("func Ignore(mockArg0 string, n int) int {"))
	g.Expect(source).To(ContainSubstring("MockIgnore().Intercept(MockIgnoreArgs{MockArg0: mockArg0, N: n})"))
	g.Expect(source).To(ContainSubstring("func Unnamed(mockArg0 int, mockArg1 string) {"))
	g.Expect(source).To(ContainSubstring(
		"\tmockArgs, _, mockDone := MockUnnamed().Intercept(MockUnnamedArgs{MockArg0: mockArg0, MockArg1: mockArg1})\n" +
			"\tif mockDone {\n" +
			"\t\treturn\n" +
			"\t}\n"))
	g.Expect(source).To(ContainSubstring("func (mockRecv *Thing) Poke() {"))
	g.Expect(source).To(ContainSubstring("mockRecv = mockArgs.Recv"))

	sidecar := string(result.Sidecar)
	g.Expect(sidecar).To(ContainSubstring("func MockUnnamed() *mockable.Func[MockUnnamedArgs, struct{}] {"))
	g.Expect(sidecar).To(MatchRegexp(`type MockThingPokeArgs struct \{\n\tRecv \*Thing\n\}`))
}

func TestFile_MultipleAndNamedResults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "split.go", `package split

//mockable:inject
func Split(s string) (string, error) {
	return s, nil
}

//mockable:inject
func Divide(a, b int) (quotient, remainder int) {
	return a / b, a % b
}
`)

	source := string(result.Source)
	g.Expect(source).To(ContainSubstring("return mockRes.R0, mockRes.R1\n"))
	g.Expect(source).To(ContainSubstring("return mockRes.Quotient, mockRes.Remainder\n"))

	sidecar := string(result.Sidecar)
	g.Expect(sidecar).To(MatchRegexp(`type MockSplitResults struct \{\n\tR0\s+string\n\tR1\s+error\n\}`))
	g.Expect(sidecar).To(ContainSubstring("func MockSplit() *mockable.Func[MockSplitArgs, MockSplitResults] {"))
	g.Expect(sidecar).To(MatchRegexp(`type MockDivideResults struct \{\n\tQuotient\s+int\n\tRemainder\s+int\n\}`))
}

func TestFile_GenericFunctionKeysOnTypeArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "gen.go", `package gen

import "fmt"

//mockable:inject
func Describe[T fmt.Stringer](v T, more ...T) string {
	return v.String()
}
`)

	g.Expect(string(result.Source)).To(ContainSubstring(
		"MockDescribe[T]().Intercept(MockDescribeArgs[T]{V: v, More: more})"))

	sidecar := string(result.Sidecar)
	g.Expect(sidecar).To(ContainSubstring(`"reflect"`))
	g.Expect(sidecar).To(ContainSubstring(`"fmt"`))
	g.Expect(sidecar).To(MatchRegexp(`type MockDescribeArgs\[T fmt.Stringer\] struct \{\n\tV\s+T\n\tMore\s+\[\]T\n\}`))
	g.Expect(sidecar).To(ContainSubstring(
		"func MockDescribe[T fmt.Stringer]() *mockable.Func[MockDescribeArgs[T], string] {"))
	g.Expect(sidecar).To(ContainSubstring(
		"return mockable.Of[MockDescribeArgs[T], string](mockDescribeSite, reflect.TypeFor[T]())"))
}

func TestFile_GenericReceiver(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "box.go", `package box

type Box[T any] struct{ value T }

//mockable:inject
func (b *Box[T]) Get() T {
	return b.value
}
`)

	g.Expect(string(result.Source)).To(ContainSubstring(
		"mockArgs, mockRes, mockDone := MockBoxGet[T]().Intercept(MockBoxGetArgs[T]{Recv: b})"))
	g.Expect(string(result.Sidecar)).To(ContainSubstring(`mockBoxGetSite = mockable.NewSite("box.Box.Get")`))
	g.Expect(string(result.Sidecar)).To(MatchRegexp(`type MockBoxGetArgs\[T any\] struct \{\n\tRecv \*Box\[T\]\n\}`))
}

func TestFile_ConstAndExclusiveSites(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := mustGenerate(t, "site.go", `package site

//mockable:const
func Answer() int {
	return 42
}

//mockable:inject exclusive
func Slot() *int {
	return new(int)
}
`)

	g.Expect(result.Injected).To(Equal(1), "const functions get no preamble")
	g.Expect(string(result.Source)).To(ContainSubstring("func Answer() int {\n\treturn 42\n}"))

	sidecar := string(result.Sidecar)
	g.Expect(sidecar).To(ContainSubstring(`mockable.NewSite("site.Answer", mockable.Const())`))
	g.Expect(sidecar).To(ContainSubstring(`mockable.NewSite("site.Slot", mockable.ExclusiveResult())`))
}

func TestHasPreamble(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(generate.HasPreamble(nil)).To(BeFalse())

	result := mustGenerate(t, "calc.go", "package calc\n\n//mockable:inject\nfunc Add(a, b int) int {\n\treturn a + b\n}\n")
	files, err := load.Files([]string{"calc.go"}, memReader{"calc.go": string(result.Source)})
	g.Expect(err).NotTo(HaveOccurred())

	targets, err := detect.Targets(files)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(generate.HasPreamble(targets[0].Decl.Body)).To(BeTrue())
}

func TestFile_RejectsNoTargets(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	files, err := load.Files([]string{"none.go"}, memReader{"none.go": "package none\n"})
	g.Expect(err).NotTo(HaveOccurred())

	_, err = generate.File(files[0], nil, generate.NewTemplateRegistry())
	g.Expect(err).To(HaveOccurred())
}

// memReader serves sources from memory.
type memReader map[string]string

func (m memReader) ReadFile(name string) ([]byte, error) {
	src, ok := m[name]
	if !ok {
		return nil, errMissing
	}

	return []byte(src), nil
}

func mustGenerate(t *testing.T, name, src string) *generate.Result {
	t.Helper()

	files, err := load.Files([]string{name}, memReader{name: src})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	targets, err := detect.Targets(files)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	result, err := generate.File(files[0], targets, generate.NewTemplateRegistry())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	return result
}

// unexported variables.
var (
	errMissing = errors.New("no such file")
)
