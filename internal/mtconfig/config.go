package mtconfig

import (
	"slices"
)

// Pair is a single key/value assignment.
type Pair struct {
	Key   string
	Value string
}

// P is shorthand for constructing a Pair.
func P(key, value string) Pair {
	return Pair{Key: key, Value: value}
}

// Section is a named group of ordered key/value pairs.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]string)}
}

// Name returns the section name as written in the file.
func (s *Section) Name() string { return s.name }

// Keys returns the keys in insertion order.
func (s *Section) Keys() []string { return slices.Clone(s.keys) }

// Get returns the value for key. Lookup is case-sensitive.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Pairs returns the section contents in order.
func (s *Section) Pairs() []Pair {
	out := make([]Pair, len(s.keys))
	for i, k := range s.keys {
		out[i] = Pair{Key: k, Value: s.values[k]}
	}
	return out
}

// Len returns the number of keys.
func (s *Section) Len() int { return len(s.keys) }

func (s *Section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *Section) clone() *Section {
	c := &Section{
		name:   s.name,
		keys:   slices.Clone(s.keys),
		values: make(map[string]string, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Config is an ordered collection of sections.
//
// The zero value is an empty configuration ready for AddSection.
type Config struct {
	sections []*Section
	index    map[string]*Section
}

// New returns an independent deep copy of base. A nil base yields an empty
// configuration.
func New(base *Config) *Config {
	if base == nil {
		return &Config{}
	}
	return base.Clone()
}

// Clone returns a deep copy. Mutating the copy never affects the receiver.
func (c *Config) Clone() *Config {
	out := &Config{
		sections: make([]*Section, 0, len(c.sections)),
		index:    make(map[string]*Section, len(c.sections)),
	}
	for _, s := range c.sections {
		cs := s.clone()
		out.sections = append(out.sections, cs)
		out.index[cs.name] = cs
	}
	return out
}

// AddSection appends an empty section and returns it. If the section
// already exists it is returned unchanged.
//
// Only templates should add sections; UpdateSection never creates them.
func (c *Config) AddSection(name string) *Section {
	if s, ok := c.index[name]; ok {
		return s
	}
	if c.index == nil {
		c.index = make(map[string]*Section)
	}
	s := newSection(name)
	c.sections = append(c.sections, s)
	c.index[name] = s
	return s
}

// Section returns the named section.
func (c *Config) Section(name string) (*Section, bool) {
	s, ok := c.index[name]
	return s, ok
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.index[name]
	return ok
}

// SectionNames returns section names in file order.
func (c *Config) SectionNames() []string {
	names := make([]string, len(c.sections))
	for i, s := range c.sections {
		names[i] = s.name
	}
	return names
}

// Get returns the value of key in section.
func (c *Config) Get(section, key string) (string, bool) {
	s, ok := c.index[section]
	if !ok {
		return "", false
	}
	return s.Get(key)
}

// UpdateSection merges pairs into an existing section. Existing keys keep
// their position and take the new value; new keys are appended in the
// order given. Keys not mentioned are left alone, so applying the same
// pairs twice has the same effect as applying them once.
func (c *Config) UpdateSection(section string, pairs ...Pair) error {
	s, ok := c.index[section]
	if !ok {
		return newMissingSection(section)
	}
	for _, p := range pairs {
		s.set(p.Key, p.Value)
	}
	return nil
}

// Equal reports whether both configurations hold the same sections, keys
// and values in the same order.
func (c *Config) Equal(other *Config) bool {
	if len(c.sections) != len(other.sections) {
		return false
	}
	for i, s := range c.sections {
		o := other.sections[i]
		if s.name != o.name || !slices.Equal(s.keys, o.keys) {
			return false
		}
		for _, k := range s.keys {
			if s.values[k] != o.values[k] {
				return false
			}
		}
	}
	return true
}
