package advancement

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Condition is one node of a context-aware predicate. Its YAML form is a
// mapping whose "condition" key selects the kind.
type Condition interface {
	Test(ctx *LootContext) bool
	// References lists the context parameters Test reads.
	References() []ContextKey
	Kind() string
}

type EntityProperties struct {
	Predicate *EntityPredicate `yaml:"predicate,omitempty"`
}

type MatchTool struct {
	Predicate *ItemPredicate `yaml:"predicate,omitempty"`
}

type LocationCheck struct {
	Predicate *LocationPredicate `yaml:"predicate,omitempty"`
}

type BlockStateProperty struct {
	Block string            `yaml:"block"`
	State map[string]string `yaml:"properties,omitempty"`
}

type Inverted struct {
	Term Condition
}

type AnyOf struct {
	Terms Conditions `yaml:"terms"`
}

func (EntityProperties) Kind() string   { return "entity_properties" }
func (MatchTool) Kind() string          { return "match_tool" }
func (LocationCheck) Kind() string      { return "location_check" }
func (BlockStateProperty) Kind() string { return "block_state_property" }
func (Inverted) Kind() string           { return "inverted" }
func (AnyOf) Kind() string              { return "any_of" }

func (c EntityProperties) Test(ctx *LootContext) bool {
	return ctx != nil && c.Predicate.Matches(ctx.Origin, ctx.ThisEntity)
}

func (c MatchTool) Test(ctx *LootContext) bool {
	return ctx.Has(KeyTool) && c.Predicate.Matches(*ctx.Tool)
}

func (c LocationCheck) Test(ctx *LootContext) bool {
	if !ctx.Has(KeyOrigin) {
		return false
	}
	l := Location{Dimension: ctx.Dimension, Pos: *ctx.Origin}
	if ctx.BlockState != nil {
		l.Block = *ctx.BlockState
	}
	return c.Predicate.Matches(l)
}

func (c BlockStateProperty) Test(ctx *LootContext) bool {
	if !ctx.Has(KeyBlockState) {
		return false
	}
	return ctx.BlockState.Block.Name == c.Block && matchState(c.State, *ctx.BlockState)
}

func (c Inverted) Test(ctx *LootContext) bool {
	return !c.Term.Test(ctx)
}

func (c AnyOf) Test(ctx *LootContext) bool {
	for _, t := range c.Terms {
		if t.Test(ctx) {
			return true
		}
	}
	return false
}

func (EntityProperties) References() []ContextKey {
	return []ContextKey{KeyThisEntity, KeyOrigin}
}

func (MatchTool) References() []ContextKey          { return []ContextKey{KeyTool} }
func (LocationCheck) References() []ContextKey      { return []ContextKey{KeyOrigin} }
func (BlockStateProperty) References() []ContextKey { return []ContextKey{KeyBlockState} }
func (c Inverted) References() []ContextKey         { return c.Term.References() }

func (c AnyOf) References() []ContextKey {
	var keys []ContextKey
	for _, t := range c.Terms {
		keys = append(keys, t.References()...)
	}
	return keys
}

// Conditions is a list of conditions that all have to pass.
type Conditions []Condition

func (cs Conditions) Test(ctx *LootContext) bool {
	for _, c := range cs {
		if !c.Test(ctx) {
			return false
		}
	}
	return true
}

func (cs *Conditions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: conditions must be a list", node.Line)
	}
	out := make(Conditions, 0, len(node.Content))
	for _, n := range node.Content {
		c, err := decodeCondition(n)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*cs = out
	return nil
}

func (cs Conditions) MarshalYAML() (any, error) {
	nodes := make([]any, len(cs))
	for i, c := range cs {
		n, err := encodeCondition(c)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func decodeCondition(node *yaml.Node) (Condition, error) {
	var head struct {
		Condition string    `yaml:"condition"`
		Term      yaml.Node `yaml:"term"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, err
	}
	switch head.Condition {
	case "entity_properties":
		var c EntityProperties
		err := node.Decode(&c)
		return c, err
	case "match_tool":
		var c MatchTool
		err := node.Decode(&c)
		return c, err
	case "location_check":
		var c LocationCheck
		err := node.Decode(&c)
		return c, err
	case "block_state_property":
		var c BlockStateProperty
		err := node.Decode(&c)
		return c, err
	case "any_of":
		var c AnyOf
		err := node.Decode(&c)
		return c, err
	case "inverted":
		if head.Term.Kind == 0 {
			return nil, fmt.Errorf("line %d: inverted condition without term", node.Line)
		}
		term, err := decodeCondition(&head.Term)
		if err != nil {
			return nil, err
		}
		return Inverted{Term: term}, nil
	case "":
		return nil, fmt.Errorf("line %d: missing condition kind", node.Line)
	default:
		return nil, fmt.Errorf("line %d: unknown condition %q", node.Line, head.Condition)
	}
}

func encodeCondition(c Condition) (any, error) {
	m := map[string]any{"condition": c.Kind()}
	switch v := c.(type) {
	case EntityProperties:
		if v.Predicate != nil {
			m["predicate"] = v.Predicate
		}
	case MatchTool:
		if v.Predicate != nil {
			m["predicate"] = v.Predicate
		}
	case LocationCheck:
		if v.Predicate != nil {
			m["predicate"] = v.Predicate
		}
	case BlockStateProperty:
		m["block"] = v.Block
		if len(v.State) > 0 {
			m["properties"] = v.State
		}
	case Inverted:
		term, err := encodeCondition(v.Term)
		if err != nil {
			return nil, err
		}
		m["term"] = term
	case AnyOf:
		m["terms"] = v.Terms
	default:
		return nil, fmt.Errorf("cannot encode condition %T", c)
	}
	return m, nil
}

// ContextAwarePredicate tests a LootContext against a list of conditions.
// A nil or empty predicate matches every context.
//
// In YAML it is either a list of conditions or, as a shorthand, a bare
// entity predicate applied to this_entity.
type ContextAwarePredicate struct {
	Conditions Conditions
}

func EntityContext(p *EntityPredicate) *ContextAwarePredicate {
	return &ContextAwarePredicate{Conditions: Conditions{EntityProperties{Predicate: p}}}
}

func (p *ContextAwarePredicate) Matches(ctx *LootContext) bool {
	if p == nil {
		return true
	}
	return p.Conditions.Test(ctx)
}

func (p *ContextAwarePredicate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var ep EntityPredicate
		if err := node.Decode(&ep); err != nil {
			return err
		}
		*p = *EntityContext(&ep)
		return nil
	}
	return node.Decode(&p.Conditions)
}

func (p ContextAwarePredicate) MarshalYAML() (any, error) {
	return p.Conditions, nil
}
