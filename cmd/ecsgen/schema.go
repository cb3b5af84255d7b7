package main

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// fieldTypes maps schema type names to Go types. The set is closed: the
// reflection facade in ecs/component must have a shape for every entry.
var fieldTypes = map[string]string{
	"f32":    "float32",
	"i32":    "int32",
	"i64":    "int64",
	"u32":    "uint32",
	"u64":    "uint64",
	"bool":   "bool",
	"string": "string",
	"vec2":   "[2]float32",
	"color":  "[4]float32",
	"sprite": "sprite.ID",
}

var (
	kindNameRe  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	goNameRe    = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// initialisms are upper-cased whole when a wire name is converted to Go.
var initialisms = map[string]bool{"id": true, "ui": true, "url": true, "rgb": true}

type Schema struct {
	Package string `yaml:"package"`
	Kinds   []Kind `yaml:"kinds"`
}

type Kind struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// HasDefaults reports whether any field declares a default.
func (k Kind) HasDefaults() bool {
	for _, f := range k.Fields {
		if f.Default != "" {
			return true
		}
	}
	return false
}

type Field struct {
	Name      string `yaml:"name"`
	Go        string `yaml:"go"`
	Type      string `yaml:"type"`
	Default   string `yaml:"default"`
	Transient bool   `yaml:"transient"`
	GoTypeRaw string `yaml:"go_type"`
}

// GoName is the exported struct field name.
func (f Field) GoName() string {
	if f.Go != "" {
		return f.Go
	}
	parts := strings.Split(f.Name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if initialisms[p] {
			b.WriteString(strings.ToUpper(p))
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// GoType is the Go type of the struct field.
func (f Field) GoType() string {
	if f.Transient {
		return f.GoTypeRaw
	}
	return fieldTypes[f.Type]
}

// Tag is the msgpack struct tag value.
func (f Field) Tag() string {
	if f.Transient {
		return "-"
	}
	return f.Name
}

// Editable reports whether the field is exposed through the facade.
func (f Field) Editable() bool {
	return !f.Transient
}

func parseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if s.Package == "" {
		s.Package = "component"
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if len(s.Kinds) == 0 {
		return fmt.Errorf("schema declares no kinds")
	}
	kinds := make(map[string]bool, len(s.Kinds))
	for _, k := range s.Kinds {
		if !kindNameRe.MatchString(k.Name) {
			return fmt.Errorf("kind %q: name must be an exported Go identifier", k.Name)
		}
		if kinds[k.Name] {
			return fmt.Errorf("kind %q: declared twice", k.Name)
		}
		kinds[k.Name] = true

		wire := make(map[string]bool, len(k.Fields))
		goNames := make(map[string]bool, len(k.Fields))
		for _, f := range k.Fields {
			if !fieldNameRe.MatchString(f.Name) {
				return fmt.Errorf("kind %s: field %q: name must be lower snake case", k.Name, f.Name)
			}
			if wire[f.Name] {
				return fmt.Errorf("kind %s: field %q: declared twice", k.Name, f.Name)
			}
			wire[f.Name] = true

			gn := f.GoName()
			if !goNameRe.MatchString(gn) {
				return fmt.Errorf("kind %s: field %q: Go name %q is not exported", k.Name, f.Name, gn)
			}
			if goNames[gn] {
				return fmt.Errorf("kind %s: field %q: Go name %q collides", k.Name, f.Name, gn)
			}
			goNames[gn] = true

			if f.Transient {
				if f.Type != "" {
					return fmt.Errorf("kind %s: field %q: transient fields take go_type, not type", k.Name, f.Name)
				}
				if !strings.HasPrefix(f.GoTypeRaw, "*") {
					return fmt.Errorf("kind %s: field %q: transient go_type must be a pointer, got %q", k.Name, f.Name, f.GoTypeRaw)
				}
				if f.Default != "" {
					return fmt.Errorf("kind %s: field %q: transient fields cannot have defaults", k.Name, f.Name)
				}
				continue
			}
			if _, ok := fieldTypes[f.Type]; !ok {
				return fmt.Errorf("kind %s: field %q: unknown type %q", k.Name, f.Name, f.Type)
			}
		}
	}
	return nil
}
