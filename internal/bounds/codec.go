package bounds

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/mcwire/internal/codec"
)

type wireBounds[N Number] struct {
	Min *N
	Max *N
}

// StreamCodec writes a range as two optional values. Decoding a swapped range
// fails instead of constructing it.
func StreamCodec[N Number](num codec.Codec[N]) codec.Codec[Bounds[N]] {
	wire := codec.Composite2(
		codec.Get("min", codec.Optional(num), func(w wireBounds[N]) *N { return w.Min }),
		codec.Get("max", codec.Optional(num), func(w wireBounds[N]) *N { return w.Max }),
		func(min, max *N) wireBounds[N] { return wireBounds[N]{Min: min, Max: max} },
	)
	return codec.Map(wire,
		func(w wireBounds[N]) (Bounds[N], error) { return New(w.Min, w.Max) },
		func(b Bounds[N]) wireBounds[N] { return wireBounds[N]{Min: b.minPtr(), Max: b.maxPtr()} },
	)
}

var (
	IntsCodec    = StreamCodec(codec.VarLong)
	DoublesCodec = StreamCodec(codec.Double)
)

type yamlBounds[N Number] struct {
	Min *N `yaml:"min,omitempty"`
	Max *N `yaml:"max,omitempty"`
}

// MarshalYAML writes a bare scalar when min == max and a {min, max} mapping
// otherwise.
func (b Bounds[N]) MarshalYAML() (any, error) {
	if b.IsPoint() {
		return b.min, nil
	}
	return yamlBounds[N]{Min: b.minPtr(), Max: b.maxPtr()}, nil
}

// UnmarshalYAML accepts both the scalar and the mapping form. JSON documents
// decode through the same path.
func (b *Bounds[N]) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v N
		if err := node.Decode(&v); err != nil {
			return err
		}
		*b = Exactly(v)
		return nil
	case yaml.MappingNode:
		var raw yamlBounds[N]
		if err := node.Decode(&raw); err != nil {
			return err
		}
		parsed, err := New(raw.Min, raw.Max)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*b = parsed
		return nil
	default:
		return fmt.Errorf("line %d: range must be a number or a {min, max} mapping", node.Line)
	}
}
