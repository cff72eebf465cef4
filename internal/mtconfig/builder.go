package mtconfig

import (
	"errors"

	"github.com/roach88/autoopti/internal/param"
)

// Section names the builder writes to.
const (
	SectionTester       = "Tester"
	SectionTesterInputs = "TesterInputs"
)

// Builder layers overrides onto a private copy of a base configuration.
//
// Upserts chain. The first failure is kept and every later upsert becomes
// a no-op, so a chain can be checked once with Err or Build.
type Builder struct {
	config *Config
	err    error
}

// NewBuilder starts from a deep copy of base; base is never modified.
func NewBuilder(base *Config) *Builder {
	return &Builder{config: New(base)}
}

// NewBuilderFromFile starts from the configuration file at path.
func NewBuilderFromFile(path string) (*Builder, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Builder{config: cfg}, nil
}

// UpsertTester merges pairs into the [Tester] section.
func (b *Builder) UpsertTester(pairs ...Pair) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.config.UpdateSection(SectionTester, pairs...)
	return b
}

// UpsertTesterInput renders inputs as ranges and merges them into the
// [TesterInputs] section. Tuples are normalized first; a malformed value
// fails the builder with ErrCodeInvalidInput and nothing is merged.
func (b *Builder) UpsertTesterInput(inputs ...param.Input) *Builder {
	if b.err != nil {
		return b
	}
	pairs := make([]Pair, 0, len(inputs))
	for _, in := range inputs {
		if in.Value == nil {
			b.err = &Error{Code: ErrCodeInvalidInput, Message: "input " + in.Name + " has no value", Section: SectionTesterInputs}
			return b
		}
		r, err := in.Value.Normalize()
		if err != nil {
			b.err = invalidInput(in.Name, err)
			return b
		}
		pairs = append(pairs, Pair{Key: in.Name, Value: r.String()})
	}
	b.err = b.config.UpdateSection(SectionTesterInputs, pairs...)
	return b
}

// UpsertSet merges a parameter set into [TesterInputs].
func (b *Builder) UpsertSet(set param.Set) *Builder {
	if b.err != nil {
		return b
	}
	inputs, err := set.Normalize()
	if err != nil {
		b.err = invalidInput("", err)
		return b
	}
	return b.UpsertTesterInput(inputs...)
}

// Err returns the first upsert failure, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the live configuration. Later upserts are visible through
// the returned pointer; callers that need a stable snapshot should Clone it.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.config, nil
}

func invalidInput(name string, err error) *Error {
	msg := err.Error()
	var ve *param.ValueError
	if errors.As(err, &ve) && ve.Input == "" && name != "" {
		msg = "input " + name + ": " + ve.Message
	}
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: msg,
		Section: SectionTesterInputs,
		Err:     err,
	}
}
