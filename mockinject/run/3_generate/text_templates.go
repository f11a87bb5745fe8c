package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry holds the parsed sidecar templates.
// Create one with NewTemplateRegistry; it is safe for concurrent use.
type TemplateRegistry struct {
	headerTmpl        *template.Template
	argsStructTmpl    *template.Template
	resultsStructTmpl *template.Template
	accessorTmpl      *template.Template
	sitesTmpl         *template.Template
}

// NewTemplateRegistry parses all sidecar templates.
// Templates are constants, so parsing cannot fail at runtime.
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{}

	templates := []struct {
		target  **template.Template
		name    string
		content string
	}{
		{&registry.headerTmpl, "header", tmplHeader},
		{&registry.argsStructTmpl, "argsStruct", tmplArgsStruct},
		{&registry.resultsStructTmpl, "resultsStruct", tmplResultsStruct},
		{&registry.accessorTmpl, "accessor", tmplAccessor},
		{&registry.sitesTmpl, "sites", tmplSites},
	}

	for _, def := range templates {
		*def.target = template.Must(template.New(def.name).Parse(def.content))
	}

	return registry
}

// WriteAccessor writes the typed handle accessor for one target.
func (r *TemplateRegistry) WriteAccessor(buf *bytes.Buffer, data any) {
	execute(r.accessorTmpl, buf, data)
}

// WriteArgsStruct writes the argument struct for one target.
func (r *TemplateRegistry) WriteArgsStruct(buf *bytes.Buffer, data any) {
	execute(r.argsStructTmpl, buf, data)
}

// WriteHeader writes the generated-code banner, package clause and imports.
func (r *TemplateRegistry) WriteHeader(buf *bytes.Buffer, data any) {
	execute(r.headerTmpl, buf, data)
}

// WriteResultsStruct writes the results struct for a multi-result target.
func (r *TemplateRegistry) WriteResultsStruct(buf *bytes.Buffer, data any) {
	execute(r.resultsStructTmpl, buf, data)
}

// WriteSites writes the site variables for all targets of a file.
func (r *TemplateRegistry) WriteSites(buf *bytes.Buffer, data any) {
	execute(r.sitesTmpl, buf, data)
}

func execute(tmpl *template.Template, buf *bytes.Buffer, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}

const (
	tmplHeader = `// Code generated by mockinject. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
`

	tmplArgsStruct = `
// {{.ArgsName}} holds the arguments of {{.SiteName}}.
type {{.ArgsName}}{{.TypeParamsDecl}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
`

	tmplResultsStruct = `
// {{.ResultsName}} holds the results of {{.SiteName}}.
type {{.ResultsName}}{{.TypeParamsDecl}} struct {
{{- range .Results}}
	{{.Name}} {{.Type}}
{{- end}}
}
`

	tmplAccessor = `
// {{.Accessor}} returns the mock handle for {{.SiteName}}.
func {{.Accessor}}{{.TypeParamsDecl}}() *mockable.Func[{{.ArgsType}}, {{.ResultType}}] {
	return mockable.Of[{{.ArgsType}}, {{.ResultType}}]({{.SiteVar}}{{range .TypeArgs}}, {{.}}{{end}})
}
`

	tmplSites = `
// unexported variables.
var (
{{- range .}}
	{{.SiteVar}} = mockable.NewSite({{printf "%q" .SiteName}}{{range .SiteOpts}}, {{.}}{{end}})
{{- end}}
)
`
)
