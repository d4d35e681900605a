package advancement

import (
	"fmt"

	"github.com/Versifine/mcwire/internal/registry"
)

// CriterionValidator checks criterion conditions when they are loaded. It
// reports conditions that read context parameters their context does not
// provide and, when a registry snapshot is given, names missing from it.
type CriterionValidator struct {
	reporter *ProblemReporter
	set      *registry.Set
}

func NewCriterionValidator(r *ProblemReporter, set *registry.Set) *CriterionValidator {
	return &CriterionValidator{reporter: r, set: set}
}

// ValidateEntity validates a player predicate against AdvancementEntity.
func (v *CriterionValidator) ValidateEntity(name string, p *ContextAwarePredicate) {
	v.Validate(name, p, AdvancementEntity)
}

func (v *CriterionValidator) Validate(name string, p *ContextAwarePredicate, keys ContextKeySet) {
	if p == nil {
		return
	}
	r := v.reporter.ForChild(name)
	for i, c := range p.Conditions {
		v.validateCondition(r.ForChild(fmt.Sprintf("[%d]", i)), c, keys)
	}
}

func (v *CriterionValidator) validateCondition(r *ProblemReporter, c Condition, keys ContextKeySet) {
	for _, k := range c.References() {
		if !keys.IsAllowed(k) {
			r.Report("parameter %s is not provided in context %s", k, keys.Name)
		}
	}
	v.checkNames(r, c)
}

// checkNames looks up the registry names a condition mentions. References
// of nested terms are covered by their parent's References.
func (v *CriterionValidator) checkNames(r *ProblemReporter, c Condition) {
	switch c := c.(type) {
	case EntityProperties:
		v.checkEntity(r.ForChild("predicate"), c.Predicate)
	case MatchTool:
		v.checkItem(r.ForChild("predicate"), c.Predicate)
	case LocationCheck:
		v.checkLocation(r.ForChild("predicate"), c.Predicate)
	case BlockStateProperty:
		v.checkBlockNames(r.ForChild("block"), c.Block)
	case Inverted:
		v.checkNames(r.ForChild("term"), c.Term)
	case AnyOf:
		for i, t := range c.Terms {
			v.checkNames(r.ForChild(fmt.Sprintf("terms[%d]", i)), t)
		}
	}
}

// ValidateItems checks item names of a list of item predicates.
func (v *CriterionValidator) ValidateItems(name string, preds []*ItemPredicate) {
	r := v.reporter.ForChild(name)
	for i, p := range preds {
		v.checkItem(r.ForChild(fmt.Sprintf("[%d]", i)), p)
	}
}

func (v *CriterionValidator) ValidateItem(name string, p *ItemPredicate) {
	v.checkItem(v.reporter.ForChild(name), p)
}

func (v *CriterionValidator) ValidateBlock(name string, block string) {
	if block != "" {
		v.checkBlockNames(v.reporter.ForChild(name), block)
	}
}

func (v *CriterionValidator) checkEntity(r *ProblemReporter, p *EntityPredicate) {
	if p == nil {
		return
	}
	if p.Type != "" && v.set != nil {
		if _, ok := v.set.EntityTypes.ByName(p.Type); !ok {
			r.ForChild("type").Report("unknown entity type %q", p.Type)
		}
	}
	v.checkLocation(r.ForChild("location"), p.Location)
	v.checkItem(r.ForChild("mainhand"), p.Mainhand)
}

func (v *CriterionValidator) checkLocation(r *ProblemReporter, p *LocationPredicate) {
	if p == nil || p.Block == nil {
		return
	}
	v.checkBlockNames(r.ForChild("block"), p.Block.Blocks...)
}

func (v *CriterionValidator) checkItem(r *ProblemReporter, p *ItemPredicate) {
	if p == nil || v.set == nil {
		return
	}
	for _, name := range p.Items {
		if _, ok := v.set.Items.ByName(name); !ok {
			r.ForChild("items").Report("unknown item %q", name)
		}
	}
}

func (v *CriterionValidator) checkBlockNames(r *ProblemReporter, names ...string) {
	if v.set == nil {
		return
	}
	for _, name := range names {
		if _, ok := v.set.Blocks.ByName(name); !ok {
			r.Report("unknown block %q", name)
		}
	}
}
