package domain

// ColorScheme is an arbitrary styling mapping handed to the engine as-is.
// Keys follow the engine's color scheme layout, e.g. {"Header": {"background": "#000"}}.
type ColorScheme map[string]any

// Clone deep-copies nested maps and slices so that callers cannot mutate
// a scheme held by built options.
func (c ColorScheme) Clone() ColorScheme {
	if c == nil {
		return nil
	}
	out := make(ColorScheme, len(c))
	for k, v := range c {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = cloneAny(vv)
		}
		return out
	case ColorScheme:
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = cloneAny(vv)
		}
		return out
	default:
		return v
	}
}
