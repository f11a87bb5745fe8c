// mockinject makes Go functions mockable per test.
// Install it with `go install github.com/toejough/mockable/mockinject@latest`,
// mark functions with a `//mockable:inject` doc comment (or put one above the
// package clause to mark every function in the file), and add
// `//go:generate mockinject` to the file. Each marked function gets a dispatch
// preamble as its first statement, and generated_<file>_mocks.go declares the
// typed handle Mock<Name>() tests register closures through.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/mockable/mockinject/run"
)

// main is the entry point of the mockinject tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
