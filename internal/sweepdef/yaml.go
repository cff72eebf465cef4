package sweepdef

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/autoopti/internal/param"
)

type yamlDefinition struct {
	Name          string    `yaml:"name"`
	BaseConfig    string    `yaml:"base_config"`
	Symbols       []string  `yaml:"symbols,omitempty"`
	Periods       []string  `yaml:"periods,omitempty"`
	ParameterSets []yamlSet `yaml:"parameter_sets"`
}

type yamlSet struct {
	Name   string     `yaml:"name"`
	Inputs yamlInputs `yaml:"inputs"`
	Split  *Split     `yaml:"split,omitempty"`
}

// yamlInputs decodes an inputs mapping in document order.
type yamlInputs []param.Input

// UnmarshalYAML walks the mapping node directly; decoding into a Go map
// would lose the order of the inputs.
func (in *yamlInputs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: inputs must be a mapping", node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate input %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		v, err := yamlValue(val)
		if err != nil {
			return fmt.Errorf("line %d: input %q: %w", val.Line, key.Value, err)
		}
		*in = append(*in, param.Input{Name: key.Value, Value: v})
	}
	return nil
}

// yamlValue accepts [start, step, end] or {start, step, end}. Sequences of
// other lengths are kept as tuples and rejected when normalized.
func yamlValue(node *yaml.Node) (param.Value, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.SequenceNode:
		t := make(param.Tuple, 0, len(node.Content))
		for _, el := range node.Content {
			if el.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("range elements must be scalars")
			}
			t = append(t, el.Value)
		}
		return t, nil

	case yaml.MappingNode:
		fields := map[string]string{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			switch k.Value {
			case "start", "step", "end":
			default:
				return nil, fmt.Errorf("unknown range field %q", k.Value)
			}
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("range field %q must be a scalar", k.Value)
			}
			fields[k.Value] = v.Value
		}
		for _, f := range []string{"start", "step", "end"} {
			if _, ok := fields[f]; !ok {
				return nil, fmt.Errorf("range field %q is required", f)
			}
		}
		return param.Range{Start: fields["start"], Step: fields["step"], End: fields["end"]}, nil

	default:
		return nil, fmt.Errorf("expected [start, step, end] or {start, step, end}")
	}
}

// ParseYAML decodes a YAML definition. Relative base_config paths are
// resolved against dir. Unknown fields are rejected.
func ParseYAML(data []byte, dir string) (*Definition, error) {
	var doc yamlDefinition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "failed to parse YAML", Err: err}
	}

	setDefs := make([]SetDef, len(doc.ParameterSets))
	for i, s := range doc.ParameterSets {
		setDefs[i] = SetDef{Name: s.Name, Inputs: []param.Input(s.Inputs), Split: s.Split}
	}
	return newDefinition(doc.Name, doc.BaseConfig, dir, doc.Symbols, doc.Periods, setDefs)
}
