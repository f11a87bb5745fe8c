// Package load parses the files mockinject rewrites.
package load

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// File is a parsed source file together with what it was parsed from.
type File struct {
	Path   string
	Source []byte
	DST    *dst.File
}

// IsTest reports whether the file is a _test.go file.
func (f *File) IsTest() bool {
	return strings.HasSuffix(f.Path, "_test.go")
}

// Package returns the file's package clause name.
func (f *File) Package() string {
	return f.DST.Name.Name
}

// Reader reads source files.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// Files reads and parses every named file with comments kept, so directives
// and doc comments survive the rewrite. All files must share one package.
func Files(paths []string, reader Reader) ([]*File, error) {
	if len(paths) == 0 {
		return nil, errNoFiles
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	files := make([]*File, 0, len(paths))

	for _, path := range paths {
		if filepath.Ext(path) != ".go" {
			return nil, fmt.Errorf("%w: %s", errNotGoFile, path)
		}

		src, err := reader.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		parsed, err := dec.ParseFile(path, src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		file := &File{Path: path, Source: src, DST: parsed}

		if len(files) > 0 && basePackage(files[0]) != basePackage(file) {
			return nil, fmt.Errorf("%w: %s is package %s, %s is package %s",
				errMixedPackages, files[0].Path, files[0].Package(), path, file.Package())
		}

		files = append(files, file)
	}

	return files, nil
}

// basePackage strips the external test suffix, so foo and foo_test files
// may be processed together.
func basePackage(f *File) string {
	return strings.TrimSuffix(f.Package(), "_test")
}

// unexported variables.
var (
	errMixedPackages = errors.New("files belong to different packages")
	errNoFiles       = errors.New("no files to process")
	errNotGoFile     = errors.New("not a .go file")
)
