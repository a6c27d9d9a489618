package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Well-known flag names. The vocabulary is open: any string key is accepted
// and forwarded to the engine.
const (
	FlagToolboxEnabled     = "toolbox.enabled"
	FlagToolbarButtons     = "toolbar.buttons"
	FlagPipEnabled         = "pip.enabled"
	FlagWelcomePageEnabled = "welcomepage.enabled"
)

var ErrUnsupportedFlagValue = errors.New("unsupported feature flag value")

type FlagKind uint8

const (
	FlagBool FlagKind = iota + 1
	FlagString
	FlagNumber
	FlagMap
)

func (k FlagKind) String() string {
	switch k {
	case FlagBool:
		return "bool"
	case FlagString:
		return "string"
	case FlagNumber:
		return "number"
	case FlagMap:
		return "map"
	default:
		return "invalid"
	}
}

// FlagValue is a tagged union of the value shapes the engine understands.
// The zero FlagValue is invalid.
type FlagValue struct {
	kind FlagKind
	b    bool
	s    string
	n    float64
	m    map[string]FlagValue
}

func Bool(v bool) FlagValue      { return FlagValue{kind: FlagBool, b: v} }
func String(v string) FlagValue  { return FlagValue{kind: FlagString, s: v} }
func Number(v float64) FlagValue { return FlagValue{kind: FlagNumber, n: v} }
func Int(v int) FlagValue        { return Number(float64(v)) }

func (v FlagValue) Kind() FlagKind { return v.kind }
func (v FlagValue) IsValid() bool  { return v.kind != 0 }

// Map wraps a nested set of flags. The map is copied.
func Map(v map[string]FlagValue) FlagValue {
	return FlagValue{kind: FlagMap, m: cloneFlagMap(v)}
}

// FlagOf converts a JSON-like Go value into a FlagValue.
func FlagOf(v any) (FlagValue, error) {
	switch x := v.(type) {
	case FlagValue:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(x), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return FlagValue{}, fmt.Errorf("%w: %v", ErrUnsupportedFlagValue, err)
		}
		return Number(f), nil
	case map[string]any:
		m := make(map[string]FlagValue, len(x))
		for k, raw := range x {
			fv, err := FlagOf(raw)
			if err != nil {
				return FlagValue{}, fmt.Errorf("flag %q: %w", k, err)
			}
			m[k] = fv
		}
		return FlagValue{kind: FlagMap, m: m}, nil
	case map[string]FlagValue:
		return Map(x), nil
	default:
		return FlagValue{}, fmt.Errorf("%w: %T", ErrUnsupportedFlagValue, v)
	}
}

func (v FlagValue) AsBool() (bool, bool)      { return v.b, v.kind == FlagBool }
func (v FlagValue) AsString() (string, bool)  { return v.s, v.kind == FlagString }
func (v FlagValue) AsNumber() (float64, bool) { return v.n, v.kind == FlagNumber }

// AsMap returns a copy of the nested flags.
func (v FlagValue) AsMap() (map[string]FlagValue, bool) {
	if v.kind != FlagMap {
		return nil, false
	}
	return cloneFlagMap(v.m), true
}

// Interface returns the plain Go form: bool, string, float64 or map[string]any.
func (v FlagValue) Interface() any {
	switch v.kind {
	case FlagBool:
		return v.b
	case FlagString:
		return v.s
	case FlagNumber:
		return v.n
	case FlagMap:
		out := make(map[string]any, len(v.m))
		for k, fv := range v.m {
			out[k] = fv.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality.
func (v FlagValue) Equal(o FlagValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case FlagBool:
		return v.b == o.b
	case FlagString:
		return v.s == o.s
	case FlagNumber:
		return v.n == o.n
	case FlagMap:
		return maps.EqualFunc(v.m, o.m, FlagValue.Equal)
	default:
		return true
	}
}

func (v FlagValue) MarshalJSON() ([]byte, error) {
	if v.kind == 0 {
		return nil, ErrUnsupportedFlagValue
	}
	return json.Marshal(v.Interface())
}

func (v *FlagValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fv, err := FlagOf(raw)
	if err != nil {
		return err
	}
	*v = fv
	return nil
}

func (v FlagValue) String() string {
	if v.kind == 0 {
		return "<invalid>"
	}
	return fmt.Sprint(v.Interface())
}

func cloneFlagMap(in map[string]FlagValue) map[string]FlagValue {
	out := make(map[string]FlagValue, len(in))
	for k, v := range in {
		if v.kind == FlagMap {
			v = FlagValue{kind: FlagMap, m: cloneFlagMap(v.m)}
		}
		out[k] = v
	}
	return out
}

// FeatureFlagStore collects flags while options are being built.
// It is not safe for concurrent use.
type FeatureFlagStore struct {
	flags map[string]FlagValue
}

func NewFeatureFlagStore() *FeatureFlagStore {
	return &FeatureFlagStore{flags: make(map[string]FlagValue)}
}

// Set overwrites any previous value for name. Invalid values are ignored.
func (s *FeatureFlagStore) Set(name string, v FlagValue) {
	if !v.IsValid() {
		return
	}
	if s.flags == nil {
		s.flags = make(map[string]FlagValue)
	}
	if v.kind == FlagMap {
		v = Map(v.m)
	}
	s.flags[name] = v
}

func (s *FeatureFlagStore) Len() int { return len(s.flags) }

// Freeze returns a read-only view. Later writes to the store do not leak
// into the view.
func (s *FeatureFlagStore) Freeze() FeatureFlags {
	return FeatureFlags{m: cloneFlagMap(s.flags)}
}

// FeatureFlags is a frozen set of flags.
type FeatureFlags struct {
	m map[string]FlagValue
}

// FlagsFrom freezes a plain map.
func FlagsFrom(m map[string]FlagValue) FeatureFlags {
	return FeatureFlags{m: cloneFlagMap(m)}
}

func (f FeatureFlags) Len() int { return len(f.m) }

func (f FeatureFlags) Get(name string) (FlagValue, bool) {
	v, ok := f.m[name]
	if ok && v.kind == FlagMap {
		v = Map(v.m)
	}
	return v, ok
}

// Bool returns the flag as a boolean. ok is false when the flag is absent
// or not a boolean.
func (f FeatureFlags) Bool(name string) (value, ok bool) {
	v, found := f.m[name]
	if !found {
		return false, false
	}
	return v.AsBool()
}

func (f FeatureFlags) Keys() []string {
	return slices.Sorted(maps.Keys(f.m))
}

// Map returns a deep copy of the flags.
func (f FeatureFlags) Map() map[string]FlagValue {
	return cloneFlagMap(f.m)
}

// Interface returns the flags as plain Go values, suitable for JSON.
func (f FeatureFlags) Interface() map[string]any {
	out := make(map[string]any, len(f.m))
	for k, v := range f.m {
		out[k] = v.Interface()
	}
	return out
}

// Merge returns the key-by-key union of f and override; override wins on
// collision.
func (f FeatureFlags) Merge(override FeatureFlags) FeatureFlags {
	out := cloneFlagMap(f.m)
	for k, v := range cloneFlagMap(override.m) {
		out[k] = v
	}
	return FeatureFlags{m: out}
}

func (f FeatureFlags) MarshalJSON() ([]byte, error) {
	if f.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.m)
}
