package analyze

import (
	"fmt"

	"fixture-generator/descriptor"

	"gopkg.in/yaml.v3"
)

// Record is a synthesized value of a loaded struct type. Fields keep their
// declaration order and are keyed by their JSON name.
type Record struct {
	Type   string
	Fields []RecordField
}

// RecordField is one populated field of a Record.
type RecordField struct {
	Name  string
	Value any
}

func (r *Record) Set(f descriptor.Field, v any) error {
	name := f.JSONName()
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = v
			return nil
		}
	}

	r.Fields = append(r.Fields, RecordField{Name: name, Value: v})

	return nil
}

func (r *Record) Value() any { return r }

// Get returns the value stored under name.
func (r *Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// MarshalYAML renders the record as a mapping in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, f := range r.Fields {
		value := &yaml.Node{}
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", r.Type, f.Name, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			value,
		)
	}

	return node, nil
}
