// Package generate inserts dispatch preambles and renders sidecar files.
package generate

import (
	"strconv"
	"strings"

	"github.com/dave/dst"
	astutil "github.com/toejough/mockable/mockinject/run/0_util"
	detect "github.com/toejough/mockable/mockinject/run/2_detect"
)

// field is one member of a generated args or results struct.
type field struct {
	Name  string // exported struct field name
	Local string // identifier in the function body, empty for results
	Type  string
}

// signature is everything the preamble and the sidecar say about one target.
type signature struct {
	target *detect.Target

	Accessor       string // MockAdd
	ArgsName       string // MockAddArgs
	ResultsName    string // MockAddResults, empty unless there are several results
	SiteVar        string // mockAddSite
	SiteName       string
	SiteOpts       []string
	TypeParamsDecl string // [T any, U comparable]
	TypeParamsUse  string // [T, U]
	TypeArgs       []string
	Fields         []field
	Results        []field
	ResultType     string // the single result type, the results struct, or struct{}

	// idents and names run parallel to Fields: the declared identifier (nil
	// when unnamed) and the name the body uses.
	idents []*dst.Ident
	names  []string
}

// ArgsType is the instantiated args struct type.
func (s *signature) ArgsType() string {
	return s.ArgsName + s.TypeParamsUse
}

// newSignature derives the generated names and struct shapes for target.
// It does not modify the declaration.
func newSignature(target *detect.Target) *signature {
	sig := &signature{
		target:     target,
		Accessor:   "Mock" + target.Name,
		ArgsName:   "Mock" + target.Name + "Args",
		SiteVar:    "mock" + target.Name + "Site",
		SiteName:   target.SiteName,
		ResultType: "struct{}",
	}

	if target.Const {
		sig.SiteOpts = append(sig.SiteOpts, "mockable.Const()")
	}

	if target.Exclusive {
		sig.SiteOpts = append(sig.SiteOpts, "mockable.ExclusiveResult()")
	}

	if target.Generic() {
		decl := make([]string, len(target.TypeParams))
		use := make([]string, len(target.TypeParams))

		for i, param := range target.TypeParams {
			decl[i] = param.Name + " " + param.Constraint
			use[i] = param.Name
			sig.TypeArgs = append(sig.TypeArgs, "reflect.TypeFor["+param.Name+"]()")
		}

		sig.TypeParamsDecl = "[" + strings.Join(decl, ", ") + "]"
		sig.TypeParamsUse = "[" + strings.Join(use, ", ") + "]"
	}

	sig.collectArgs()
	sig.collectResults()

	return sig
}

// applyNames gives every unnamed or blank parameter the identifier the
// preamble refers to it by.
func (s *signature) applyNames() {
	for i, ident := range s.idents {
		if ident != nil {
			ident.Name = s.names[i]
		}
	}

	decl := s.target.Decl

	if s.target.IsMethod() && len(decl.Recv.List[0].Names) == 0 {
		decl.Recv.List[0].Names = []*dst.Ident{dst.NewIdent(s.names[0])}
	}

	offset := 0
	if s.target.IsMethod() {
		offset = 1
	}

	if decl.Type.Params == nil {
		return
	}

	for _, param := range decl.Type.Params.List {
		if len(param.Names) == 0 {
			param.Names = []*dst.Ident{dst.NewIdent(s.names[offset])}
		}

		offset += len(param.Names)
	}
}

// collectArgs lists the receiver and parameters in call order.
func (s *signature) collectArgs() {
	decl := s.target.Decl
	used := make(map[string]bool)

	if s.target.IsMethod() {
		recv := decl.Recv.List[0]
		local := "mockRecv"

		var ident *dst.Ident

		if len(recv.Names) > 0 {
			ident = recv.Names[0]
			if ident.Name != "_" {
				local = ident.Name
			}
		}

		s.add(used, "Recv", local, astutil.StringifyExpr(recv.Type), ident)
	}

	if decl.Type.Params == nil {
		return
	}

	position := 0

	for _, param := range decl.Type.Params.List {
		typ := astutil.FieldType(param.Type)

		if len(param.Names) == 0 {
			local := "mockArg" + strconv.Itoa(position)
			s.add(used, astutil.ExportName(local), local, typ, nil)

			position++

			continue
		}

		for _, ident := range param.Names {
			local := ident.Name
			if local == "_" {
				local = "mockArg" + strconv.Itoa(position)
			}

			s.add(used, astutil.ExportName(local), local, typ, ident)

			position++
		}
	}
}

// collectResults decides the result type and, for several results, the
// results struct fields.
func (s *signature) collectResults() {
	results := s.target.Decl.Type.Results
	if results == nil || len(results.List) == 0 {
		return
	}

	var fields []field

	used := make(map[string]bool)

	for _, result := range results.List {
		typ := astutil.StringifyExpr(result.Type)

		if len(result.Names) == 0 {
			fields = append(fields, field{Name: uniqueName(used, "R"+strconv.Itoa(len(fields))), Type: typ})

			continue
		}

		for _, ident := range result.Names {
			name := "R" + strconv.Itoa(len(fields))
			if ident.Name != "_" {
				name = astutil.ExportName(ident.Name)
			}

			fields = append(fields, field{Name: uniqueName(used, name), Type: typ})
		}
	}

	if len(fields) == 1 {
		s.ResultType = fields[0].Type

		return
	}

	s.ResultsName = "Mock" + s.target.Name + "Results"
	s.ResultType = s.ResultsName + s.TypeParamsUse
	s.Results = fields
}

func (s *signature) add(used map[string]bool, name, local, typ string, ident *dst.Ident) {
	s.Fields = append(s.Fields, field{Name: uniqueName(used, name), Local: local, Type: typ})
	s.idents = append(s.idents, ident)
	s.names = append(s.names, local)
}

// uniqueName returns name, or name with a numeric suffix when it is taken.
func uniqueName(used map[string]bool, name string) string {
	candidate := name

	for i := 1; used[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}

	used[candidate] = true

	return candidate
}
