package param

import "fmt"

// Value is an input value that can be turned into a Range.
//
// Normalize must be pure and idempotent: calling it repeatedly on the same
// value yields the same Range.
type Value interface {
	Normalize() (Range, error)
}

// Tuple is an ordered (start, step, end) triple of scalars.
type Tuple []any

// Normalize converts the tuple to a Range. Tuples that do not hold exactly
// three elements are rejected rather than truncated or padded.
func (t Tuple) Normalize() (Range, error) {
	if len(t) != 3 {
		return Range{}, &ValueError{
			Message: fmt.Sprintf("expected (start, step, end), got %d element(s)", len(t)),
		}
	}
	return NewRange(t[0], t[1], t[2]), nil
}

// ValueError reports an input value that cannot be normalized.
type ValueError struct {
	// Input is the input name, filled in by Set.Normalize.
	Input string
	// Set is the parameter set name, filled in by Set.Normalize.
	Set     string
	Message string
}

func (e *ValueError) Error() string {
	switch {
	case e.Set != "" && e.Input != "":
		return fmt.Sprintf("set %q input %q: %s", e.Set, e.Input, e.Message)
	case e.Input != "":
		return fmt.Sprintf("input %q: %s", e.Input, e.Message)
	default:
		return e.Message
	}
}
