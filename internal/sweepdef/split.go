package sweepdef

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/roach88/autoopti/internal/param"
)

// SplitRange partitions a numeric range into at most parts contiguous
// sub-ranges that keep the original step and stay on its grid. Earlier
// parts receive the extra grid values when the count does not divide
// evenly. Arithmetic is exact decimal, so fractional steps do not drift.
func SplitRange(r param.Range, parts int) ([]param.Range, error) {
	if parts < 1 {
		return nil, fmt.Errorf("parts must be at least 1, got %d", parts)
	}
	start, err := decimal.NewFromString(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start %q is not numeric: %w", r.Start, err)
	}
	step, err := decimal.NewFromString(r.Step)
	if err != nil {
		return nil, fmt.Errorf("step %q is not numeric: %w", r.Step, err)
	}
	end, err := decimal.NewFromString(r.End)
	if err != nil {
		return nil, fmt.Errorf("end %q is not numeric: %w", r.End, err)
	}
	if !step.IsPositive() {
		return nil, fmt.Errorf("step must be positive, got %s", r.Step)
	}
	if end.LessThan(start) {
		return nil, fmt.Errorf("end %s is before start %s", r.End, r.Start)
	}

	// Number of grid values start, start+step, ... that do not pass end.
	n := end.Sub(start).Div(step).Floor().IntPart() + 1
	p := int64(parts)
	if p > n {
		p = n
	}

	out := make([]param.Range, 0, p)
	size, rem := n/p, n%p
	var lo int64
	for i := int64(0); i < p; i++ {
		hi := lo + size - 1
		if i < rem {
			hi++
		}
		out = append(out, param.Range{
			Start: start.Add(step.Mul(decimal.NewFromInt(lo))).String(),
			Step:  r.Step,
			End:   start.Add(step.Mul(decimal.NewFromInt(hi))).String(),
		})
		lo = hi + 1
	}
	return out, nil
}
