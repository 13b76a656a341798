package plugin

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"

	"github.com/jmriego/gremlin/internal/ctxlog"
	"github.com/jmriego/gremlin/internal/vars"
)

// ErrTypeMismatch reports a stored registry value that cannot be cast to
// its variable's declared type. The variable's externally visible value
// falls back to the declared default.
var ErrTypeMismatch = errors.New("registry value does not match variable type")

// Built-in bounds applied when a numeric declaration leaves its default or
// range unset.
const (
	intDefault   = 0
	intMin       = 0
	intMax       = 10
	floatDefault = 0.0
	floatMin     = -1.0
	floatMax     = 1.0
)

// Spec is one typed variable declaration extracted from a plugin file.
type Spec struct {
	// Label is the user-facing name, unique within the plugin.
	Label string

	Description string

	Type VariableType

	// Default holds the declared default value, or the built-in default
	// for numeric types when the declaration leaves it unset. Input
	// reference types have no default (cty.NilVal).
	Default cty.Value

	// Min and Max bound numeric variables. Always populated for TypeInt
	// and TypeFloat after extraction; meaningless for other types.
	Min float64
	Max float64

	// ValidTypes restricts which input classes a physical_input variable
	// accepts, e.g. ["axis", "button"]. Empty means unrestricted.
	ValidTypes []string
}

// Binding names the plugin instance a hydration reads values for.
type Binding struct {
	// Module is the plugin file path as recorded in the profile.
	Module string

	// Instance is the configured instance name.
	Instance string
}

// InputRef is the hydrated value of a virtual_input or physical_input
// variable. For virtual inputs HardwareID carries the vJoy device id.
type InputRef struct {
	HardwareID int64
	WindowsID  int64
	InputType  string
	InputID    int64
}

// finalize fills the built-in defaults for numeric declarations. Called
// once at extraction time; hasMin/hasMax say which bounds were declared.
func (s *Spec) finalize(hasDefault, hasMin, hasMax bool) {
	switch s.Type {
	case TypeInt:
		if !hasDefault {
			s.Default = cty.NumberIntVal(intDefault)
		}
		if !hasMin {
			s.Min = intMin
		}
		if !hasMax {
			s.Max = intMax
		}
	case TypeFloat:
		if !hasDefault {
			s.Default = cty.NumberFloatVal(floatDefault)
		}
		if !hasMin {
			s.Min = floatMin
		}
		if !hasMax {
			s.Max = floatMax
		}
	}
}

// SeedModeDefaults fills in the default of every mode variable that
// declares none with the first entry of modeNames, normally the profile's
// sorted mode list. A mode variable with no default would otherwise
// hydrate to the empty string, which never names a mode. Declared defaults
// and non-mode variables are left untouched.
func SeedModeDefaults(specs []*Spec, modeNames []string) {
	if len(modeNames) == 0 {
		return
	}
	for _, s := range specs {
		if s.Type == TypeMode && s.Default == cty.NilVal {
			s.Default = cty.StringVal(modeNames[0])
		}
	}
}

// Hydrate resolves the variable's current value for one plugin instance:
// the stored registry value if present and castable, the declared default
// otherwise. Numeric results are clamped into [Min, Max], so the returned
// value is always within bounds. The concrete type of the result follows
// the variable type: int64, float64, string (also for mode), or *InputRef.
//
// A stored value that fails the type cast is reported through the returned
// error (wrapping ErrTypeMismatch) and logged; the default is returned in
// its place.
func (s *Spec) Hydrate(ctx context.Context, reg *vars.Registry, b Binding) (any, error) {
	stored := reg.Get(b.Module, b.Instance, s.Label)

	value, err := s.resolve(stored)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Stored variable value has wrong type, using default.",
			"module", b.Module, "instance", b.Instance, "label", s.Label, "error", err)
	}
	return value, err
}

// resolve casts the stored value, falling back to the default on nil or on
// a failed cast.
func (s *Spec) resolve(stored any) (any, error) {
	switch s.Type {
	case TypeInt:
		if stored == nil {
			return Clamp(s.defaultInt(), int64(s.Min), int64(s.Max)), nil
		}
		n, err := castInt(stored)
		if err != nil {
			return Clamp(s.defaultInt(), int64(s.Min), int64(s.Max)), s.mismatch(err)
		}
		return Clamp(n, int64(s.Min), int64(s.Max)), nil

	case TypeFloat:
		if stored == nil {
			return Clamp(s.defaultFloat(), s.Min, s.Max), nil
		}
		f, err := castFloat(stored)
		if err != nil {
			return Clamp(s.defaultFloat(), s.Min, s.Max), s.mismatch(err)
		}
		return Clamp(f, s.Min, s.Max), nil

	case TypeString, TypeMode:
		if stored == nil {
			return s.defaultString(), nil
		}
		str, err := castString(stored)
		if err != nil {
			return s.defaultString(), s.mismatch(err)
		}
		return str, nil

	case TypeVirtualInput, TypePhysicalInput:
		if stored == nil {
			return (*InputRef)(nil), nil
		}
		ref, err := castInputRef(stored)
		if err != nil {
			return (*InputRef)(nil), s.mismatch(err)
		}
		return ref, nil

	default:
		panic(fmt.Sprintf("plugin: invalid variable type %d", int(s.Type)))
	}
}

func (s *Spec) mismatch(err error) error {
	return fmt.Errorf("%w: variable %q: %s", ErrTypeMismatch, s.Label, err)
}

func (s *Spec) defaultInt() int64 {
	if s.Default == cty.NilVal {
		return intDefault
	}
	n, _ := s.Default.AsBigFloat().Int64()
	return n
}

func (s *Spec) defaultFloat() float64 {
	if s.Default == cty.NilVal {
		return floatDefault
	}
	f, _ := s.Default.AsBigFloat().Float64()
	return f
}

func (s *Spec) defaultString() string {
	if s.Default == cty.NilVal {
		return ""
	}
	return s.Default.AsString()
}

// Clamp restricts value to [lo, hi]. Swapped bounds are tolerated: a
// malformed declaration with min > max clamps into [hi, lo] instead of
// failing.
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(hi, max(lo, value))
}

// Cast table: registry values are stored untyped and re-typed here at
// read time.

func castInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot cast %T to int", v)
	}
}

func castFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot cast %T to float", v)
	}
}

func castString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int, int64:
		return fmt.Sprintf("%d", s), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot cast %T to string", v)
	}
}

func castInputRef(v any) (*InputRef, error) {
	switch ref := v.(type) {
	case *InputRef:
		return ref, nil
	case InputRef:
		return &ref, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to input reference", v)
	}
}
