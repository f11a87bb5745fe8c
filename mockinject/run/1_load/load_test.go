package load_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	load "github.com/toejough/mockable/mockinject/run/1_load"
)

func TestFiles_KeepsCommentsAndSource(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	src := "package calc\n\n//mockable:inject\nfunc Add(a, b int) int { return a + b }\n"

	files, err := load.Files([]string{"calc.go"}, memReader{"calc.go": src})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(files).To(HaveLen(1))

	file := files[0]
	g.Expect(file.Path).To(Equal("calc.go"))
	g.Expect(string(file.Source)).To(Equal(src))
	g.Expect(file.Package()).To(Equal("calc"))
	g.Expect(file.IsTest()).To(BeFalse())
	g.Expect(file.DST.Decls).To(HaveLen(1))
	g.Expect(file.DST.Decls[0].Decorations().Start.All()).To(ContainElement("//mockable:inject"))
}

func TestFiles_AcceptsExternalTestPackage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	files, err := load.Files([]string{"calc.go", "calc_test.go"}, memReader{
		"calc.go":      "package calc\n",
		"calc_test.go": "package calc_test\n",
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(files[1].IsTest()).To(BeTrue())
}

func TestFiles_Errors(t *testing.T) {
	t.Parallel()

	sources := memReader{
		"a.go":      "package a\n",
		"b.go":      "package b\n",
		"broken.go": "package broken\n\nfunc {\n",
		"notes.md":  "# notes\n",
	}

	tests := map[string][]string{
		"no files":       nil,
		"not go":         {"notes.md"},
		"missing":        {"missing.go"},
		"parse error":    {"broken.go"},
		"mixed packages": {"a.go", "b.go"},
	}

	for name, paths := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := load.Files(paths, sources)
			g.Expect(err).To(HaveOccurred())
		})
	}
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

// unexported variables.
var (
	errMissing = errors.New("no such file")
)
