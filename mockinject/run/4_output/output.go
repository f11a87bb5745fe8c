// Package output writes rewritten sources and sidecars, or reports the diff
// in check mode.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
)

// FileSystem reads the current contents of outputs and writes new ones.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Change is one file's desired contents.
type Change struct {
	Path    string
	Content []byte
	Reorder bool // apply declaration ordering before comparing and writing
}

// Apply brings every changed file up to date. In check mode it writes
// nothing, prints a unified diff per stale file and fails with
// ErrChangesNeeded if any file would change.
func Apply(changes []Change, fileSys FileSystem, check bool, out io.Writer) error {
	stale := 0

	for _, change := range changes {
		content := string(change.Content)

		if change.Reorder {
			reordered, err := reorder.Source(content)
			if err != nil {
				// fall back to template order
				_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", change.Path, err)
			} else {
				content = reordered
			}
		}

		current, err := fileSys.ReadFile(change.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", change.Path, err)
		}

		if string(current) == content {
			continue
		}

		stale++

		if check {
			_, _ = fmt.Fprint(out, textdiff.Unified(change.Path+" (current)", change.Path+" (generated)",
				string(current), content))

			continue
		}

		err = fileSys.WriteFile(change.Path, []byte(content), generatedFilePermissions)
		if err != nil {
			return fmt.Errorf("error writing %s: %w", change.Path, err)
		}

		_, _ = fmt.Fprintf(out, "%s written successfully.\n", change.Path)
	}

	if check && stale > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrChangesNeeded, stale)
	}

	return nil
}

// SidecarName returns where the generated declarations for source go:
// generated_add_mocks.go for add.go, generated_add_mocks_test.go for
// add_test.go, in the same directory.
func SidecarName(source, prefix string) string {
	dir, base := filepath.Split(source)
	base = strings.TrimSuffix(base, ".go")

	suffix := "_mocks.go"
	if trimmed, ok := strings.CutSuffix(base, "_test"); ok {
		base = trimmed
		suffix = "_mocks_test.go"
	}

	return filepath.Join(dir, prefix+base+suffix)
}

const generatedFilePermissions = 0o600

// Exported variables.
var (
	// ErrChangesNeeded is returned in check mode when outputs are stale.
	ErrChangesNeeded = errors.New("generated files are out of date")
)
