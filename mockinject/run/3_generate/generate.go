package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	load "github.com/toejough/mockable/mockinject/run/1_load"
	detect "github.com/toejough/mockable/mockinject/run/2_detect"
)

// ImportPath is the package the sidecar's handles come from.
const ImportPath = "github.com/toejough/mockable"

// Result is the outcome of processing one source file.
type Result struct {
	File     *load.File
	Source   []byte // the file with preambles inserted
	Sidecar  []byte // the generated declarations, formatted
	Injected int    // preambles inserted by this run
}

// File inserts a preamble into every non-const target of file and renders
// the sidecar declaring their sites, argument structs and handles. targets
// must all belong to file.
func File(file *load.File, targets []*detect.Target, registry *TemplateRegistry) (*Result, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoTargets, file.Path)
	}

	result := &Result{File: file}
	sigs := make([]*signature, len(targets))

	for i, target := range targets {
		if target.File != file {
			return nil, fmt.Errorf("%w: %s is not in %s", errForeignTarget, target.SiteName, file.Path)
		}

		sigs[i] = newSignature(target)

		if target.Const {
			continue
		}

		injected, err := injectPreamble(sigs[i])
		if err != nil {
			return nil, err
		}

		if injected {
			result.Injected++
		}
	}

	var src bytes.Buffer

	err := decorator.Fprint(&src, file.DST)
	if err != nil {
		return nil, fmt.Errorf("failed to print %s: %w", file.Path, err)
	}

	result.Source = src.Bytes()

	sidecar, err := renderSidecar(file, sigs, registry)
	if err != nil {
		return nil, err
	}

	result.Sidecar = sidecar

	return result, nil
}

// importSpec is one import line of the sidecar.
type importSpec struct {
	Alias string
	Path  string
}

// headerData feeds the header template.
type headerData struct {
	Package string
	Imports []importSpec
}

// renderSidecar writes and formats the sidecar for one file.
func renderSidecar(file *load.File, sigs []*signature, registry *TemplateRegistry) ([]byte, error) {
	var buf bytes.Buffer

	registry.WriteHeader(&buf, headerData{Package: file.Package(), Imports: sidecarImports(file, sigs)})

	for _, sig := range sigs {
		registry.WriteArgsStruct(&buf, sig)

		if sig.ResultsName != "" {
			registry.WriteResultsStruct(&buf, sig)
		}

		registry.WriteAccessor(&buf, sig)
	}

	registry.WriteSites(&buf, sigs)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", errSidecarFormat, file.Path, err)
	}

	return formatted, nil
}

// sidecarImports returns mockable, reflect when a target is generic, and
// every import of file that a target's signature refers to.
func sidecarImports(file *load.File, sigs []*signature) []importSpec {
	imports := []importSpec{{Path: ImportPath}}
	seen := map[importSpec]bool{imports[0]: true}

	add := func(spec importSpec) {
		if !seen[spec] {
			seen[spec] = true

			imports = append(imports, spec)
		}
	}

	used := make(map[string]bool)

	for _, sig := range sigs {
		if sig.target.Generic() {
			add(importSpec{Path: "reflect"})
		}

		for name := range referencedPackages(sig.target.Decl) {
			used[name] = true
		}
	}

	// receiver type parameter constraints live on the type declaration
	for _, sig := range sigs {
		for _, param := range sig.target.TypeParams {
			for _, name := range selectorPackages(param.Constraint) {
				used[name] = true
			}
		}
	}

	for _, spec := range file.DST.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		alias := ""
		if spec.Name != nil {
			alias = spec.Name.Name
		}

		if alias == "_" || alias == "." {
			continue
		}

		name := alias
		if name == "" {
			name = packageName(importPath)
		}

		if !used[name] {
			continue
		}

		if alias == packageName(importPath) {
			alias = ""
		}

		add(importSpec{Alias: alias, Path: importPath})
	}

	sort.SliceStable(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	return imports
}

// packageName guesses the name a package is imported under from its path,
// skipping a major version suffix.
func packageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}

	return base
}

// referencedPackages collects the package qualifiers in a declaration's
// receiver, type parameters, parameters and results.
func referencedPackages(decl *dst.FuncDecl) map[string]bool {
	names := make(map[string]bool)

	visit := func(node dst.Node) bool {
		if sel, ok := node.(*dst.SelectorExpr); ok {
			if ident, ok := sel.X.(*dst.Ident); ok {
				names[ident.Name] = true
			}
		}

		return true
	}

	if decl.Recv != nil {
		dst.Inspect(decl.Recv, visit)
	}

	dst.Inspect(decl.Type, visit)

	return names
}

// selectorPackages returns the qualifiers in a rendered type expression.
func selectorPackages(expr string) []string {
	var names []string

	for _, match := range qualifier.FindAllStringSubmatch(expr, -1) {
		names = append(names, match[1])
	}

	return names
}

// unexported variables.
var (
	errForeignTarget = errors.New("target belongs to another file")
	errNoTargets     = errors.New("no targets")
	errPreambleParse = errors.New("failed to parse preamble")
	errSidecarFormat = errors.New("failed to format sidecar")
	//nolint:gochecknoglobals // compiled once
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	//nolint:gochecknoglobals // compiled once
	qualifier = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.[A-Za-z_]`)
)
