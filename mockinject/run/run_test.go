package run_test

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/mockable/mockinject/run"
	output "github.com/toejough/mockable/mockinject/run/4_output"
)

func TestRun_RewritesSourceAndWritesSidecar(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"greet.go": greetSource})

	var out bytes.Buffer

	err := run.Run([]string{"mockinject", "greet.go"}, noEnv, fileSys, &out)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(fileSys.written()).To(ConsistOf("greet.go", "generated_greet_mocks.go"))
	g.Expect(fileSys.read("greet.go")).To(ContainSubstring("MockGreet().Intercept(MockGreetArgs{Name: name})"))
	g.Expect(fileSys.read("generated_greet_mocks.go")).To(ContainSubstring("func MockGreet() *mockable.Func[MockGreetArgs, string]"))
	g.Expect(out.String()).To(ContainSubstring("generated_greet_mocks.go written successfully."))
}

func TestRun_SecondRunChangesNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"greet.go": greetSource})

	g.Expect(run.Run([]string{"mockinject", "greet.go"}, noEnv, fileSys, &bytes.Buffer{})).To(Succeed())

	rewritten := fileSys.read("greet.go")
	fileSys.resetWrites()

	g.Expect(run.Run([]string{"mockinject", "greet.go"}, noEnv, fileSys, &bytes.Buffer{})).To(Succeed())
	g.Expect(fileSys.written()).To(BeEmpty())
	g.Expect(fileSys.read("greet.go")).To(Equal(rewritten))

	g.Expect(run.Run([]string{"mockinject", "--check", "greet.go"}, noEnv, fileSys, &bytes.Buffer{})).To(Succeed())
}

func TestRun_CheckFailsOnStaleFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"greet.go": greetSource})

	var out bytes.Buffer

	err := run.Run([]string{"mockinject", "--check", "greet.go"}, noEnv, fileSys, &out)
	g.Expect(err).To(MatchError(output.ErrChangesNeeded))
	g.Expect(fileSys.written()).To(BeEmpty())
	g.Expect(out.String()).To(ContainSubstring("+\tmockArgs, mockRes, mockDone := MockGreet()"))
}

func TestRun_UsesGOFILEWithoutArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"greet_test.go": greetSource})
	env := func(key string) string {
		if key == "GOFILE" {
			return "greet_test.go"
		}

		return ""
	}

	g.Expect(run.Run([]string{"mockinject"}, env, fileSys, &bytes.Buffer{})).To(Succeed())
	g.Expect(fileSys.written()).To(ContainElement("generated_greet_mocks_test.go"))
}

func TestRun_CustomPrefix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"greet.go": greetSource})

	g.Expect(run.Run([]string{"mockinject", "--prefix", "zz_", "greet.go"}, noEnv, fileSys, &bytes.Buffer{})).
		To(Succeed())
	g.Expect(fileSys.written()).To(ContainElement("zz_greet_mocks.go"))
}

func TestRun_NoDirectivesWritesNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{"plain.go": "package plain\n\nfunc F() {}\n"})

	var out bytes.Buffer

	g.Expect(run.Run([]string{"mockinject", "plain.go"}, noEnv, fileSys, &out)).To(Succeed())
	g.Expect(fileSys.written()).To(BeEmpty())
	g.Expect(out.String()).To(ContainSubstring("no //mockable: directives found"))
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"mockinject"}},
		{name: "missing file", args: []string{"mockinject", "missing.go"}},
		{name: "not go", args: []string{"mockinject", "notes.txt"}},
		{name: "unknown flag", args: []string{"mockinject", "--bogus", "greet.go"}},
		{name: "bad directive", args: []string{"mockinject", "bad.go"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			fileSys := newMemFS(map[string]string{
				"greet.go":  greetSource,
				"notes.txt": "hello",
				"bad.go":    "package bad\n\n//mockable:nope\nfunc F() {}\n",
			})

			err := run.Run(testCase.args, noEnv, fileSys, &bytes.Buffer{})
			g.Expect(err).To(HaveOccurred())
			g.Expect(fileSys.written()).To(BeEmpty())
		})
	}
}

func TestRun_ProcessesSeveralFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS(map[string]string{
		"greet.go": greetSource,
		"box.go": `package greet

type Box[T any] struct{ v T }

//mockable:inject
func (b Box[T]) Value() T {
	return b.v
}
`,
		"plain.go": "package greet\n\nfunc Plain() {}\n",
	})

	g.Expect(run.Run([]string{"mockinject", "greet.go", "box.go", "plain.go"}, noEnv, fileSys, &bytes.Buffer{})).
		To(Succeed())
	g.Expect(fileSys.written()).To(ConsistOf(
		"greet.go", "generated_greet_mocks.go",
		"box.go", "generated_box_mocks.go",
	))
	g.Expect(fileSys.read("generated_box_mocks.go")).To(ContainSubstring("reflect.TypeFor[T]()"))
}

const greetSource = `package greet

//mockable:inject
func Greet(name string) string {
	return "hello " + name
}
`

// memFS is an in-memory FileSystem recording writes.
type memFS struct {
	mu     sync.Mutex
	files  map[string]string
	writes []string
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, os.ErrNotExist)
	}

	return []byte(content), nil
}

func (m *memFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = string(data)
	m.writes = append(m.writes, name)

	return nil
}

func (m *memFS) read(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.files[name]
}

func (m *memFS) resetWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes = nil
}

func (m *memFS) written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.writes...)
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files}
}

func noEnv(string) string { return "" }
