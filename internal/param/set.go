package param

import (
	"errors"
	"iter"
	"slices"
)

// Input is one named optimization input.
type Input struct {
	Name  string
	Value Value
}

// Set is a named, ordered collection of inputs describing one point (or
// sub-range) of the search space.
type Set struct {
	Name   string
	Inputs []Input
}

// Normalize returns a copy of the inputs with every value converted to a
// Range. The receiver is not modified.
func (s Set) Normalize() ([]Input, error) {
	out := make([]Input, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		if in.Value == nil {
			return nil, &ValueError{Set: s.Name, Input: in.Name, Message: "missing value"}
		}
		r, err := in.Value.Normalize()
		if err != nil {
			var ve *ValueError
			if errors.As(err, &ve) {
				return nil, &ValueError{Set: s.Name, Input: in.Name, Message: ve.Message}
			}
			return nil, err
		}
		out = append(out, Input{Name: in.Name, Value: r})
	}
	return out, nil
}

// Source is a finite, repeatable sequence of parameter sets.
//
// Sets must yield the same sets in the same order on every call and must
// not have side effects. Count must equal the number of sets Sets yields.
type Source interface {
	// Name identifies the source. Sweeps use it to build report names.
	Name() string
	// BaseConfigPath is the terminal configuration file the sweep starts from.
	BaseConfigPath() string
	Sets() iter.Seq[Set]
	Count() int
}

// StaticSource is a Source over a fixed list of sets.
type StaticSource struct {
	name     string
	basePath string
	sets     []Set
}

// NewStaticSource creates a Source that yields sets in the given order.
// The slice is copied.
func NewStaticSource(name, basePath string, sets ...Set) *StaticSource {
	return &StaticSource{
		name:     name,
		basePath: basePath,
		sets:     slices.Clone(sets),
	}
}

func (s *StaticSource) Name() string           { return s.name }
func (s *StaticSource) BaseConfigPath() string { return s.basePath }
func (s *StaticSource) Count() int             { return len(s.sets) }

// Sets yields every set in order.
func (s *StaticSource) Sets() iter.Seq[Set] {
	return slices.Values(s.sets)
}

// Collect enumerates a source into a slice.
func Collect(src Source) []Set {
	return slices.Collect(src.Sets())
}
