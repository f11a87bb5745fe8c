// Package astutil renders DST type expressions back to Go source and
// derives the identifiers mockinject generates from them.
package astutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/dst"
)

// ExpandFieldListTypes expands a field list into individual type strings.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
// For unnamed fields, outputs the type once.
func ExpandFieldListTypes(fields []*dst.Field, typeFormatter func(dst.Expr) string) []string {
	var parts []string

	for _, f := range fields {
		typeStr := typeFormatter(f.Type)
		// If field has names (e.g., "a, b int"), output type once per name
		// If field has no names (e.g., unnamed "int, int"), output type once
		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// StringifyExpr converts a DST expression to its string representation.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST expression types; complexity is inherent
func StringifyExpr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		return StringifyExpr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + StringifyExpr(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + StringifyExpr(typedExpr.Len) + "]" + StringifyExpr(typedExpr.Elt)
		}

		return "[]" + StringifyExpr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + StringifyExpr(typedExpr.Key) + "]" + StringifyExpr(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + StringifyExpr(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + StringifyExpr(typedExpr.Value)
		default:
			return "chan " + StringifyExpr(typedExpr.Value)
		}
	case *dst.InterfaceType:
		return stringifyInterfaceType(typedExpr)
	case *dst.StructType:
		return stringifyStructType(typedExpr)
	case *dst.FuncType:
		return stringifyFuncType(typedExpr)
	case *dst.Ellipsis:
		return "..." + StringifyExpr(typedExpr.Elt)
	case *dst.IndexExpr:
		return StringifyExpr(typedExpr.X) + "[" + StringifyExpr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = StringifyExpr(idx)
		}

		return StringifyExpr(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + StringifyExpr(typedExpr.X) + ")"
	case *dst.UnaryExpr:
		// type approximation in constraints: ~int
		return typedExpr.Op.String() + StringifyExpr(typedExpr.X)
	case *dst.BinaryExpr:
		// constraint unions: int | string
		return StringifyExpr(typedExpr.X) + " " + typedExpr.Op.String() + " " + StringifyExpr(typedExpr.Y)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// ExportName turns an identifier into an exported struct field name:
// "a" becomes "A", "mockArg1" becomes "MockArg1".
func ExportName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}

	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// ReceiverBase returns the name of a receiver's base type and the names of
// the type parameters it binds: "*Struct[T]" yields ("Struct", ["T"]).
func ReceiverBase(expr dst.Expr) (string, []string) {
	switch typedExpr := expr.(type) {
	case *dst.StarExpr:
		return ReceiverBase(typedExpr.X)
	case *dst.ParenExpr:
		return ReceiverBase(typedExpr.X)
	case *dst.IndexExpr:
		base, _ := ReceiverBase(typedExpr.X)

		return base, []string{StringifyExpr(typedExpr.Index)}
	case *dst.IndexListExpr:
		base, _ := ReceiverBase(typedExpr.X)

		names := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			names[i] = StringifyExpr(idx)
		}

		return base, names
	case *dst.Ident:
		return typedExpr.Name, nil
	default:
		return StringifyExpr(expr), nil
	}
}

// FieldType renders the type a field contributes to an argument struct:
// variadic "...T" becomes "[]T".
func FieldType(expr dst.Expr) string {
	if ellipsis, ok := expr.(*dst.Ellipsis); ok {
		return "[]" + StringifyExpr(ellipsis.Elt)
	}

	return StringifyExpr(expr)
}

// stringifyFuncType converts a DST FuncType to its string representation.
func stringifyFuncType(funcType *dst.FuncType) string {
	var buf strings.Builder
	buf.WriteString("func")

	// Parameters
	if funcType.Params != nil {
		buf.WriteString("(")

		paramParts := ExpandFieldListTypes(funcType.Params.List, StringifyExpr)
		buf.WriteString(strings.Join(paramParts, ", "))
		buf.WriteString(")")
	}

	// Results
	if funcType.Results != nil && len(funcType.Results.List) > 0 {
		buf.WriteString(" ")

		resultParts := ExpandFieldListTypes(funcType.Results.List, StringifyExpr)
		if len(resultParts) > 1 {
			buf.WriteString("(")
			buf.WriteString(strings.Join(resultParts, ", "))
			buf.WriteString(")")
		} else if len(resultParts) == 1 {
			buf.WriteString(resultParts[0])
		}
	}

	return buf.String()
}

// stringifyInterfaceType converts an interface type to its string representation,
// preserving method signatures for interface literals.
//
//nolint:cyclop,nestif // Complexity inherent to building interface string representation
func stringifyInterfaceType(interfaceType *dst.InterfaceType) string {
	// Empty interface
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	var buf strings.Builder
	buf.WriteString("interface{")

	// For single method, use compact format: interface{ MethodName(...) ... }
	// For multiple methods, use multi-line format
	methodCount := len(interfaceType.Methods.List)

	for _, method := range interfaceType.Methods.List {
		if methodCount > 1 {
			buf.WriteString("\n\t")
		} else {
			buf.WriteString(" ")
		}

		// Method name (if any - embedded interfaces have no name)
		if len(method.Names) > 0 {
			buf.WriteString(method.Names[0].Name)
		}

		// Method signature (function type)
		if funcType, ok := method.Type.(*dst.FuncType); ok {
			// Don't write "func" prefix for interface methods
			if funcType.Params != nil {
				buf.WriteString("(")

				paramParts := ExpandFieldListTypes(funcType.Params.List, StringifyExpr)
				buf.WriteString(strings.Join(paramParts, ", "))
				buf.WriteString(")")
			}

			if funcType.Results != nil && len(funcType.Results.List) > 0 {
				buf.WriteString(" ")

				resultParts := ExpandFieldListTypes(funcType.Results.List, StringifyExpr)
				if len(resultParts) > 1 {
					buf.WriteString("(")
					buf.WriteString(strings.Join(resultParts, ", "))
					buf.WriteString(")")
				} else if len(resultParts) == 1 {
					buf.WriteString(resultParts[0])
				}
			}
		} else {
			// Embedded interface - just the type
			buf.WriteString(StringifyExpr(method.Type))
		}
	}

	if methodCount > 1 {
		buf.WriteString("\n}")
	} else {
		buf.WriteString(" }")
	}

	return buf.String()
}

// stringifyStructType converts a DST StructType to its string representation,
// preserving all field information including names, types, and tags.
func stringifyStructType(structType *dst.StructType) string {
	// Handle nil/empty cases
	if structType.Fields == nil || structType.Fields.List == nil ||
		len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	// Build field list
	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		// Handle field names (can have multiple names OR be embedded with no names)
		if len(field.Names) > 0 {
			// Named field(s) - e.g., "Host, Port string"
			nameStrs := make([]string, len(field.Names))
			for i, name := range field.Names {
				nameStrs[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(nameStrs, ", "))
			fieldStr.WriteString(" ")
		}

		// Get type string recursively
		fieldStr.WriteString(StringifyExpr(field.Type))

		// Add tag if present
		if field.Tag != nil {
			fieldStr.WriteString(" ")
			fieldStr.WriteString(field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	// Return formatted struct literal
	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
