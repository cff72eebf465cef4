package param

import (
	"fmt"
	"strings"
)

// RangeDelimiter separates the fields of a rendered Range.
const RangeDelimiter = "||"

// EnabledFlag marks an input as participating in the optimization.
const EnabledFlag = "Y"

// Range is a single swept input: start, step and end of the search range.
// Fields hold the stringified scalars exactly as they will be written.
type Range struct {
	Start string
	Step  string
	End   string
}

// NewRange builds a Range from arbitrary scalars using their default
// string formatting.
func NewRange(start, step, end any) Range {
	return Range{
		Start: fmt.Sprint(start),
		Step:  fmt.Sprint(step),
		End:   fmt.Sprint(end),
	}
}

// String renders the range as value||start||step||end||Y.
//
// The start is emitted twice: the terminal reads the first field as the
// single-run value and the second as the range start.
func (r Range) String() string {
	return strings.Join([]string{r.Start, r.Start, r.Step, r.End, EnabledFlag}, RangeDelimiter)
}

// Normalize implements Value. A Range is already normalized.
func (r Range) Normalize() (Range, error) {
	return r, nil
}
