package sweepdef

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/autoopti/internal/param"
)

var cueTopLevel = map[string]bool{
	"name":           true,
	"base_config":    true,
	"symbols":        true,
	"periods":        true,
	"parameter_sets": true,
}

// ParseCUE evaluates a CUE definition. The value must be concrete; CUE
// constraints and defaults may be used to derive it. Struct field order
// is kept for inputs.
func ParseCUE(data []byte, filename, dir string) (*Definition, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "compiling CUE", Err: err}
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: "definition must be concrete", Err: err}
	}

	fields, err := value.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: "definition must be a struct", Err: err}
	}
	for fields.Next() {
		if !cueTopLevel[fields.Label()] {
			return nil, invalidf("unknown field %q", fields.Label())
		}
	}

	var (
		name, base       string
		symbols, periods []string
	)
	if err := decodeOptional(value, "name", &name); err != nil {
		return nil, err
	}
	if err := decodeOptional(value, "base_config", &base); err != nil {
		return nil, err
	}
	if err := decodeOptional(value, "symbols", &symbols); err != nil {
		return nil, err
	}
	if err := decodeOptional(value, "periods", &periods); err != nil {
		return nil, err
	}

	var setDefs []SetDef
	if sets := value.LookupPath(cue.ParsePath("parameter_sets")); sets.Exists() {
		list, err := sets.List()
		if err != nil {
			return nil, invalidf("parameter_sets must be a list: %v", err)
		}
		for i := 0; list.Next(); i++ {
			sd, err := cueSet(list.Value())
			if err != nil {
				return nil, invalidf("parameter_sets[%d]: %v", i, err)
			}
			setDefs = append(setDefs, sd)
		}
	}

	return newDefinition(name, base, dir, symbols, periods, setDefs)
}

func decodeOptional(v cue.Value, field string, out any) error {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return nil
	}
	if err := f.Decode(out); err != nil {
		return invalidf("%s: %v", field, err)
	}
	return nil
}

func cueSet(v cue.Value) (SetDef, error) {
	var sd SetDef
	if err := decodeOptional(v, "name", &sd.Name); err != nil {
		return sd, err
	}
	if split := v.LookupPath(cue.ParsePath("split")); split.Exists() {
		sd.Split = &Split{}
		if err := split.Decode(sd.Split); err != nil {
			return sd, fmt.Errorf("split: %w", err)
		}
	}

	inputs := v.LookupPath(cue.ParsePath("inputs"))
	if !inputs.Exists() {
		return sd, nil
	}
	iter, err := inputs.Fields()
	if err != nil {
		return sd, fmt.Errorf("inputs must be a struct: %w", err)
	}
	for iter.Next() {
		name := iter.Label()
		val, err := cueValue(iter.Value())
		if err != nil {
			return sd, fmt.Errorf("input %q: %w", name, err)
		}
		sd.Inputs = append(sd.Inputs, param.Input{Name: name, Value: val})
	}
	return sd, nil
}

func cueValue(v cue.Value) (param.Value, error) {
	switch v.Kind() {
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return nil, err
		}
		var t param.Tuple
		for list.Next() {
			s, err := cueScalar(list.Value())
			if err != nil {
				return nil, err
			}
			t = append(t, s)
		}
		return t, nil

	case cue.StructKind:
		var r param.Range
		for _, f := range []struct {
			name string
			dst  *string
		}{{"start", &r.Start}, {"step", &r.Step}, {"end", &r.End}} {
			fv := v.LookupPath(cue.ParsePath(f.name))
			if !fv.Exists() {
				return nil, fmt.Errorf("range field %q is required", f.name)
			}
			s, err := cueScalar(fv)
			if err != nil {
				return nil, fmt.Errorf("range field %q: %w", f.name, err)
			}
			*f.dst = s
		}
		return r, nil

	default:
		return nil, fmt.Errorf("expected [start, step, end] or {start, step, end}")
	}
}

// cueScalar renders a concrete scalar the way it is written in JSON, with
// strings unquoted.
func cueScalar(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind, cue.FloatKind, cue.NumberKind, cue.BoolKind:
		b, err := v.MarshalJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %v", v.Kind())
	}
}
