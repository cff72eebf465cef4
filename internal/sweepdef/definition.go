package sweepdef

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/autoopti/internal/param"
)

// Split partitions one input's range across several sets.
type Split struct {
	Input string `yaml:"input" json:"input"`
	Parts int    `yaml:"parts" json:"parts"`
}

// SetDef is a parameter set as written in the definition file.
type SetDef struct {
	Name   string
	Inputs []param.Input
	Split  *Split
}

// Definition is a loaded sweep definition. It implements param.Source.
type Definition struct {
	// Path is the file the definition was loaded from, if any.
	Path string

	name       string
	baseConfig string

	Symbols []string
	Periods []string
	SetDefs []SetDef

	sets []param.Set
}

var _ param.Source = (*Definition)(nil)

// Name returns the definition name.
func (d *Definition) Name() string { return d.name }

// BaseConfigPath returns the base configuration path, resolved against the
// definition's directory.
func (d *Definition) BaseConfigPath() string { return d.baseConfig }

// Count returns the number of expanded sets.
func (d *Definition) Count() int { return len(d.sets) }

// Sets yields the expanded sets. Expansion happens once, at load, so every
// enumeration yields the same sets.
func (d *Definition) Sets() iter.Seq[param.Set] {
	return slices.Values(d.sets)
}

// Set returns the expanded set with the given name.
func (d *Definition) Set(name string) (param.Set, bool) {
	for _, s := range d.sets {
		if s.Name == name {
			return s, true
		}
	}
	return param.Set{}, false
}

// Load reads a definition file, choosing the format from its extension.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return nil, &LoadError{Code: code, Message: "reading definition", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	var def *Definition
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		def, err = ParseYAML(data, dir)
	case ".cue":
		def, err = ParseCUE(data, path, dir)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported definition format %q (want .yaml, .yml or .cue)", ext),
			Path:    path,
		}
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Path == "" {
			le.Path = path
		}
		return nil, err
	}
	def.Path = path
	return def, nil
}

// newDefinition validates the decoded fields and expands splits.
func newDefinition(name, baseConfig, dir string, symbols, periods []string, setDefs []SetDef) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("name is required")
	}
	if baseConfig == "" {
		return nil, invalidf("base_config is required")
	}
	if !filepath.IsAbs(baseConfig) && dir != "" {
		baseConfig = filepath.Join(dir, baseConfig)
	}
	if len(setDefs) == 0 {
		return nil, invalidf("parameter_sets list is required and must be non-empty")
	}

	def := &Definition{
		name:       name,
		baseConfig: baseConfig,
		Symbols:    symbols,
		Periods:    periods,
		SetDefs:    setDefs,
	}

	seen := make(map[string]bool)
	for i, sd := range setDefs {
		if sd.Name == "" {
			return nil, invalidf("parameter_sets[%d]: name is required", i)
		}
		if len(sd.Inputs) == 0 {
			return nil, invalidf("parameter_sets[%d] (%s): inputs are required", i, sd.Name)
		}
		expanded, err := expand(sd)
		if err != nil {
			return nil, err
		}
		for _, s := range expanded {
			if seen[s.Name] {
				return nil, invalidf("duplicate parameter set name %q", s.Name)
			}
			seen[s.Name] = true
			def.sets = append(def.sets, s)
		}
	}
	return def, nil
}

func expand(sd SetDef) ([]param.Set, error) {
	if sd.Split == nil {
		return []param.Set{{Name: sd.Name, Inputs: slices.Clone(sd.Inputs)}}, nil
	}

	idx := slices.IndexFunc(sd.Inputs, func(in param.Input) bool { return in.Name == sd.Split.Input })
	if idx < 0 {
		return nil, &LoadError{
			Code:    ErrCodeSplit,
			Message: fmt.Sprintf("set %s: split input %q is not one of its inputs", sd.Name, sd.Split.Input),
		}
	}
	if sd.Split.Parts < 1 {
		return nil, &LoadError{
			Code:    ErrCodeSplit,
			Message: fmt.Sprintf("set %s: split parts must be at least 1, got %d", sd.Name, sd.Split.Parts),
		}
	}

	r, err := sd.Inputs[idx].Value.Normalize()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSplit, Message: fmt.Sprintf("set %s: input %s", sd.Name, sd.Split.Input), Err: err}
	}
	parts, err := SplitRange(r, sd.Split.Parts)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSplit, Message: fmt.Sprintf("set %s: input %s", sd.Name, sd.Split.Input), Err: err}
	}

	out := make([]param.Set, len(parts))
	for i, part := range parts {
		inputs := slices.Clone(sd.Inputs)
		inputs[idx] = param.Input{Name: sd.Split.Input, Value: part}
		out[i] = param.Set{
			Name:   fmt.Sprintf("%s[%d/%d]", sd.Name, i+1, len(parts)),
			Inputs: inputs,
		}
	}
	return out, nil
}
