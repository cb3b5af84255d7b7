package main

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

const header = "// Code generated by ecsgen from schema.yaml. DO NOT EDIT.\n\n"

var componentTmpl = template.Must(template.New("component").Parse(header + `package {{.Package}}

import (
	"github.com/milk9111/en/sprite"
	"github.com/vmihailenco/msgpack/v5"
)
{{range .Kinds}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}} ` + "`msgpack:\"{{.Tag}}\"`" + `
{{- end}}
}

var {{.Name}}Component = NewComponent[{{.Name}}]("{{.Name}}")

// New{{.Name}} returns a {{.Name}} with schema defaults applied.
func New{{.Name}}() {{.Name}} {
{{- if .HasDefaults}}
	return {{.Name}}{
{{- range .Fields}}{{if .Default}}
		{{.GoName}}: {{.Default}},
{{- end}}{{end}}
	}
{{- else}}
	return {{.Name}}{}
{{- end}}
}

// Clone returns an independent copy of c. Transient fields are not copied.
func (c {{.Name}}) Clone() {{.Name}} {
	out := c
{{- range .Fields}}{{if .Transient}}
	out.{{.GoName}} = nil
{{- end}}{{end}}
	return out
}

// Fields returns the editable fields of c in schema order.
func (c *{{.Name}}) Fields() []Ref {
	return []Ref{
{{- range .Fields}}{{if .Editable}}
		newRef(c, "{{.Name}}", &c.{{.GoName}}),
{{- end}}{{end}}
	}
}

// DecodeMsgpack starts from the schema defaults so fields missing from the
// payload keep them; unknown fields are skipped.
func (c *{{.Name}}) DecodeMsgpack(dec *msgpack.Decoder) error {
	*c = New{{.Name}}()
	type plain {{.Name}}
	return dec.Decode((*plain)(c))
}
{{end}}`))

var kindsTmpl = template.Must(template.New("kinds").Parse(header + `package schema

import "github.com/milk9111/en/ecs/component"

// kinds is the registry table in schema declaration order.
var kinds = []Kind{
{{- range .Kinds}}
	newKind(component.{{.Name}}Component, component.New{{.Name}}, component.{{.Name}}.Clone),
{{- end}}
}
`))

var sceneTmpl = template.Must(template.New("scene").Parse(header + `package scene

import (
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
)

// Scene holds one (persisted id, value) sequence per kind. Fields follow
// schema order, which fixes the encoded order.
type Scene struct {
{{- range .Kinds}}
	{{.Name}} []Entry[component.{{.Name}}] ` + "`msgpack:\"{{.Name}}\"`" + `
{{- end}}
}

// Capture copies every registered component out of w.
func Capture(w *ecs.World) *Scene {
	return &Scene{
{{- range .Kinds}}
		{{.Name}}: collect(w, component.{{.Name}}Component),
{{- end}}
	}
}

func (s *Scene) restore(w *ecs.World, ids *remap) error {
{{- range .Kinds}}
	if err := insert(w, ids, component.{{.Name}}Component, s.{{.Name}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

// Len returns the number of entries across all kinds.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return {{range $i, $k := .Kinds}}{{if $i}} + {{end}}len(s.{{$k.Name}}){{end}}
}
`))

func render(t *template.Template, filename string, s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}
	out, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w\n%s", filename, err, buf.String())
	}
	return out, nil
}
