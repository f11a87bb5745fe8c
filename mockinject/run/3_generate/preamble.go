package generate

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// HasPreamble reports whether body already starts with a dispatch preamble:
// an assignment defining three values, the last one mockDone.
func HasPreamble(body *dst.BlockStmt) bool {
	if body == nil || len(body.List) == 0 {
		return false
	}

	assign, ok := body.List[0].(*dst.AssignStmt)
	if !ok || assign.Tok != token.DEFINE || len(assign.Lhs) != preambleValues {
		return false
	}

	done, ok := assign.Lhs[preambleValues-1].(*dst.Ident)

	return ok && done.Name == "mockDone"
}

// injectPreamble names the target's parameters and prepends the preamble to
// its body. A body that already has one is left untouched.
func injectPreamble(sig *signature) (bool, error) {
	body := sig.target.Decl.Body
	if HasPreamble(body) {
		return false, nil
	}

	stmts, err := preambleStmts(sig)
	if err != nil {
		return false, err
	}

	sig.applyNames()

	if len(body.List) > 0 {
		stmts[len(stmts)-1].Decorations().After = dst.EmptyLine
	}

	body.List = append(stmts, body.List...)

	return true, nil
}

// preambleSource renders the preamble statements as Go source.
func preambleSource(sig *signature) string {
	argsVar, resVar := "mockArgs", "mockRes"
	if len(sig.Fields) == 0 {
		argsVar = "_"
	}

	if sig.ResultType == "struct{}" {
		resVar = "_"
	}

	inits := make([]string, len(sig.Fields))
	for i, f := range sig.Fields {
		inits[i] = f.Name + ": " + f.Local
	}

	var buf strings.Builder

	fmt.Fprintf(&buf, "%s, %s, mockDone := %s%s().Intercept(%s{%s})\n",
		argsVar, resVar, sig.Accessor, sig.TypeParamsUse, sig.ArgsType(), strings.Join(inits, ", "))

	buf.WriteString("if mockDone {\n")

	switch {
	case resVar == "_":
		buf.WriteString("return\n")
	case len(sig.Results) == 0:
		buf.WriteString("return mockRes\n")
	default:
		values := make([]string, len(sig.Results))
		for i, r := range sig.Results {
			values[i] = "mockRes." + r.Name
		}

		buf.WriteString("return " + strings.Join(values, ", ") + "\n")
	}

	buf.WriteString("}\n")

	if argsVar == "_" {
		return buf.String()
	}

	locals := make([]string, len(sig.Fields))
	values := make([]string, len(sig.Fields))

	for i, f := range sig.Fields {
		locals[i] = f.Local
		values[i] = "mockArgs." + f.Name
	}

	fmt.Fprintf(&buf, "\n%s = %s\n", strings.Join(locals, ", "), strings.Join(values, ", "))

	return buf.String()
}

// preambleStmts parses the rendered preamble into statements that can be
// spliced into another file.
func preambleStmts(sig *signature) ([]dst.Stmt, error) {
	src := "package p\n\nfunc _() {\n" + preambleSource(sig) + "}\n"

	file, err := decorator.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", errPreambleParse, sig.SiteName, err)
	}

	funcDecl, ok := file.Decls[0].(*dst.FuncDecl)
	if !ok {
		return nil, fmt.Errorf("%w for %s", errPreambleParse, sig.SiteName)
	}

	return funcDecl.Body.List, nil
}

const preambleValues = 3
