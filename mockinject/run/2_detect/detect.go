// Package detect finds the functions and methods marked for injection.
package detect

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dave/dst"
	astutil "github.com/toejough/mockable/mockinject/run/0_util"
	load "github.com/toejough/mockable/mockinject/run/1_load"
)

// DirectivePrefix starts every comment mockinject acts on.
const DirectivePrefix = "//mockable:"

// ReservedNames are the identifiers the dispatch preamble declares in a
// target's body. Targets may not use them for their own names.
//
//nolint:gochecknoglobals // read-only
var ReservedNames = []string{"mockArgs", "mockRes", "mockDone"}

// Directive is what a //mockable: comment asks for.
type Directive struct {
	Const     bool
	Exclusive bool
}

// Target is one function or method to make mockable.
type Target struct {
	File       *load.File
	Decl       *dst.FuncDecl
	Name       string // generated identifier stem, e.g. Add or StructGet
	SiteName   string // diagnostic name, e.g. pkg.Add or pkg.Struct.Get
	Const      bool
	Exclusive  bool
	TypeParams []TypeParam // the function's, or those its receiver binds
}

// Generic reports whether the target has type parameters.
func (t *Target) Generic() bool {
	return len(t.TypeParams) > 0
}

// IsMethod reports whether the target has a receiver.
func (t *Target) IsMethod() bool {
	return t.Decl.Recv != nil && len(t.Decl.Recv.List) > 0
}

// TypeParam is a type parameter name with its constraint as source text.
type TypeParam struct {
	Name       string
	Constraint string
}

// Targets returns every marked function in files, in source order. A
// directive before the package clause marks every function with a body.
// Repeated directives on one function yield one target.
func Targets(files []*load.File) ([]*Target, error) {
	var targets []*Target

	for _, file := range files {
		fileDirective, fileMarked, err := parseDirectives(file.DST.Decs.Start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}

		for _, decl := range file.DST.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || funcDecl.Body == nil || skipped(funcDecl) {
				continue
			}

			directive, marked, err := parseDirectives(funcDecl.Decs.Start)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", file.Path, funcDecl.Name.Name, err)
			}

			if !marked {
				if !fileMarked {
					continue
				}

				directive = fileDirective
			}

			target, err := newTarget(file, funcDecl, directive, files)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file.Path, err)
			}

			targets = append(targets, target)
		}
	}

	return targets, nil
}

// newTarget resolves names and type parameters for one declaration.
func newTarget(file *load.File, decl *dst.FuncDecl, directive Directive, files []*load.File) (*Target, error) {
	target := &Target{
		File:      file,
		Decl:      decl,
		Name:      decl.Name.Name,
		SiteName:  file.Package() + "." + decl.Name.Name,
		Const:     directive.Const,
		Exclusive: directive.Exclusive,
	}

	if !target.Const {
		if name, ok := reservedName(decl); ok {
			return nil, fmt.Errorf("%w: %s declares %s", errReservedName, decl.Name.Name, name)
		}
	}

	if !target.IsMethod() {
		target.TypeParams = typeParams(decl.Type.TypeParams)

		return target, nil
	}

	recvBase, recvParams := astutil.ReceiverBase(decl.Recv.List[0].Type)
	target.Name = recvBase + decl.Name.Name
	target.SiteName = file.Package() + "." + recvBase + "." + decl.Name.Name

	if len(recvParams) == 0 {
		return target, nil
	}

	declared, err := receiverTypeParams(recvBase, file.Package(), files)
	if err != nil {
		return nil, err
	}

	if len(declared) != len(recvParams) {
		return nil, fmt.Errorf("%w: %s binds %d type parameters, %s declares %d",
			errReceiverMismatch, decl.Name.Name, len(recvParams), recvBase, len(declared))
	}

	target.TypeParams = make([]TypeParam, len(recvParams))
	for i, name := range recvParams {
		target.TypeParams[i] = TypeParam{Name: name, Constraint: declared[i].Constraint}
	}

	return target, nil
}

// parseDirectives folds the //mockable: comments in decs into one directive.
func parseDirectives(decs dst.Decorations) (Directive, bool, error) {
	var (
		directive Directive
		marked    bool
	)

	for _, comment := range decs.All() {
		text, ok := strings.CutPrefix(strings.TrimSpace(comment), DirectivePrefix)
		if !ok {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			return Directive{}, false, fmt.Errorf("%w: %q", errUnknownDirective, comment)
		}

		switch fields[0] {
		case "inject":
			for _, opt := range fields[1:] {
				if opt != "exclusive" {
					return Directive{}, false, fmt.Errorf("%w: %q in %q", errUnknownOption, opt, comment)
				}

				directive.Exclusive = true
			}
		case "const":
			if len(fields) > 1 {
				return Directive{}, false, fmt.Errorf("%w: %q", errUnknownOption, comment)
			}

			directive.Const = true
		default:
			return Directive{}, false, fmt.Errorf("%w: %q", errUnknownDirective, comment)
		}

		marked = true
	}

	return directive, marked, nil
}

// receiverTypeParams finds the type declaration a receiver names and returns
// its type parameters.
func receiverTypeParams(typeName, pkg string, files []*load.File) ([]TypeParam, error) {
	for _, file := range files {
		if file.Package() != pkg {
			continue
		}

		for _, decl := range file.DST.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if ok && typeSpec.Name.Name == typeName {
					return typeParams(typeSpec.TypeParams), nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", errReceiverNotFound, typeName)
}

// reservedName returns the first receiver, type parameter, parameter or
// named result that would collide with the preamble's variables.
func reservedName(decl *dst.FuncDecl) (string, bool) {
	lists := []*dst.FieldList{decl.Recv, decl.Type.TypeParams, decl.Type.Params, decl.Type.Results}

	for _, list := range lists {
		if list == nil {
			continue
		}

		for _, field := range list.List {
			for _, name := range field.Names {
				if slices.Contains(ReservedNames, name.Name) {
					return name.Name, true
				}
			}
		}
	}

	return "", false
}

// skipped reports declarations that cannot be called by name.
func skipped(decl *dst.FuncDecl) bool {
	return decl.Recv == nil && (decl.Name.Name == "init" || decl.Name.Name == "main")
}

func typeParams(list *dst.FieldList) []TypeParam {
	if list == nil {
		return nil
	}

	var params []TypeParam

	for _, field := range list.List {
		constraint := astutil.StringifyExpr(field.Type)
		for _, name := range field.Names {
			params = append(params, TypeParam{Name: name.Name, Constraint: constraint})
		}
	}

	return params
}

// unexported variables.
var (
	errReceiverMismatch = errors.New("receiver type parameters do not match the type")
	errReceiverNotFound = errors.New("receiver type declaration not found in the processed files")
	errReservedName     = errors.New("name is reserved for the dispatch preamble")
	errUnknownDirective = errors.New("unknown mockable directive")
	errUnknownOption    = errors.New("unknown mockable directive option")
)
