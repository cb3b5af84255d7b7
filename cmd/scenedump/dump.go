package main

import (
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/ecs/schema"
	"github.com/milk9111/en/sprite"
	"gopkg.in/yaml.v3"
)

type entityDump struct {
	Entity     string          `yaml:"entity"`
	Components []componentDump `yaml:"components"`
}

type componentDump struct {
	Kind   string    `yaml:"kind"`
	Fields yaml.Node `yaml:"fields"`
}

var _ component.Editor = (*fieldWriter)(nil)

// fieldWriter renders visited fields into a YAML mapping in field order.
type fieldWriter struct {
	node    *yaml.Node
	sprites *sprite.Manager
	err     error
}

func (fw *fieldWriter) put(name string, v any) {
	if fw.err != nil {
		return
	}
	var val yaml.Node
	if err := val.Encode(v); err != nil {
		fw.err = err
		return
	}
	if val.Kind == yaml.SequenceNode {
		val.Style = yaml.FlowStyle
	}
	fw.node.Content = append(fw.node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &val)
}

func (fw *fieldWriter) Float32(name string, v *float32) { fw.put(name, *v) }
func (fw *fieldWriter) Float64(name string, v *float64) { fw.put(name, *v) }
func (fw *fieldWriter) Int32(name string, v *int32) { fw.put(name, *v) }
func (fw *fieldWriter) Uint32(name string, v *uint32) { fw.put(name, *v) }
func (fw *fieldWriter) Int64(name string, v *int64) { fw.put(name, *v) }
func (fw *fieldWriter) Uint64(name string, v *uint64) { fw.put(name, *v) }
func (fw *fieldWriter) String(name string, v *string) { fw.put(name, *v) }
func (fw *fieldWriter) Bool(name string, v *bool) { fw.put(name, *v) }
func (fw *fieldWriter) Color(name string, v *[4]float32) { fw.put(name, v[:]) }
func (fw *fieldWriter) Vec2(name string, v *[2]float32) { fw.put(name, v[:]) }

// Sprite handles print as their sheet name when sprites are loaded.
func (fw *fieldWriter) Sprite(name string, v *sprite.ID) {
	if fw.sprites != nil && fw.sprites.Len() > 0 {
		fw.put(name, fw.sprites.Name(*v))
		return
	}
	fw.put(name, int(*v))
}

// dumpWorld lists every entity with its components in schema order.
func dumpWorld(w *ecs.World, sprites *sprite.Manager) ([]entityDump, error) {
	var out []entityDump
	for _, e := range ecs.Entities(w) {
		d := entityDump{Entity: e.String()}
		for _, k := range schema.Present(w, e) {
			refs, _ := k.Fields(w, e)
			fw := &fieldWriter{node: &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}, sprites: sprites}
			for _, ref := range refs {
				ref.Visit(fw)
			}
			if fw.err != nil {
				return nil, fw.err
			}
			d.Components = append(d.Components, componentDump{Kind: k.Name(), Fields: *fw.node})
		}
		out = append(out, d)
	}
	return out, nil
}
