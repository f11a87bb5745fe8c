// Package run implements the mockinject tool in a testable way.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"golang.org/x/sync/errgroup"
	load "github.com/toejough/mockable/mockinject/run/1_load"
	detect "github.com/toejough/mockable/mockinject/run/2_detect"
	generate "github.com/toejough/mockable/mockinject/run/3_generate"
	output "github.com/toejough/mockable/mockinject/run/4_output"
)

// FileSystem is what mockinject reads sources from and writes results to.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Run executes mockinject. It takes command-line arguments, an environment
// variable getter, a FileSystem for file operations and a writer for
// progress. Without file arguments it processes $GOFILE, so it can run from
// a //go:generate line.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	paths := parsed.Files
	if len(paths) == 0 {
		goFile := getEnv("GOFILE")
		if goFile == "" {
			return errNoInput
		}

		paths = []string{goFile}
	}

	files, err := load.Files(paths, fileSys)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	targets, err := detect.Targets(files)
	if err != nil {
		return fmt.Errorf("failed to detect targets: %w", err)
	}

	results, err := generateAll(files, targets)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "no //mockable: directives found")

		return nil
	}

	changes := make([]output.Change, 0, 2*len(results)) //nolint:mnd // source and sidecar per file
	for _, result := range results {
		changes = append(changes,
			output.Change{Path: result.File.Path, Content: result.Source},
			output.Change{
				Path:    output.SidecarName(result.File.Path, parsed.Prefix),
				Content: result.Sidecar,
				Reorder: true,
			},
		)
	}

	err = output.Apply(changes, fileSys, parsed.Check, out)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// cliArgs defines the command-line arguments for mockinject.
type cliArgs struct {
	Files  []string `arg:"positional"                    help:"source files to rewrite (defaults to $GOFILE)"`
	Check  bool     `arg:"--check"                       help:"report stale files as a diff instead of writing"`
	Prefix string   `arg:"--prefix" default:"generated_" help:"file name prefix for sidecar files"`
}

// generateAll rewrites every file that has targets, concurrently. Results
// keep the order of files.
func generateAll(files []*load.File, targets []*detect.Target) ([]*generate.Result, error) {
	byFile := make(map[*load.File][]*detect.Target)
	for _, target := range targets {
		byFile[target.File] = append(byFile[target.File], target)
	}

	registry := generate.NewTemplateRegistry()
	results := make([]*generate.Result, len(files))

	group, _ := errgroup.WithContext(context.Background())

	for i, file := range files {
		fileTargets := byFile[file]
		if len(fileTargets) == 0 {
			continue
		}

		group.Go(func() error {
			result, err := generate.File(file, fileTargets, registry)
			if err != nil {
				return fmt.Errorf("failed to generate %s: %w", file.Path, err)
			}

			results[i] = result

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per file
	}

	kept := results[:0]

	for _, result := range results {
		if result != nil {
			kept = append(kept, result)
		}
	}

	return kept, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "mockinject"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// unexported variables.
var (
	errNoInput = errors.New("no files given and $GOFILE is not set")
)
