package advancement

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/registry"
)

// Criterion names a trigger and holds that trigger's conditions, which are
// decoded once the trigger is known.
type Criterion struct {
	Trigger    string    `yaml:"trigger"`
	Conditions yaml.Node `yaml:"conditions,omitempty"`
}

type Advancement struct {
	ID       string               `yaml:"id"`
	Criteria map[string]Criterion `yaml:"criteria"`
}

// CriterionNames returns the criterion names in a stable order.
func (a Advancement) CriterionNames() []string {
	names := make([]string, 0, len(a.Criteria))
	for name := range a.Criteria {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseAdvancements reads a YAML (or JSON) list of advancements.
func ParseAdvancements(data []byte) ([]Advancement, error) {
	var advs []Advancement
	if err := yaml.Unmarshal(data, &advs); err != nil {
		return nil, fmt.Errorf("parse advancements: %w", err)
	}
	for _, a := range advs {
		if a.ID == "" {
			return nil, fmt.Errorf("parse advancements: advancement without id")
		}
		if len(a.Criteria) == 0 {
			return nil, fmt.Errorf("parse advancements: %s has no criteria", a.ID)
		}
	}
	return advs, nil
}

func LoadAdvancements(path string) ([]Advancement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAdvancements(data)
}

// Triggers owns the listeners of every trigger kind. One value is shared by
// all sessions of a server.
type Triggers struct {
	InventoryChanged *Trigger[InventoryChanged]
	EnterBlock       *Trigger[EnterBlock]
	ConsumeItem      *Trigger[ConsumeItem]

	set *registry.Set
}

// NewTriggers creates the triggers. set, if not nil, is used to validate
// registry names in criteria.
func NewTriggers(bus *event.Bus, set *registry.Set) *Triggers {
	return &Triggers{
		InventoryChanged: NewTrigger[InventoryChanged]("inventory_changed", bus),
		EnterBlock:       NewTrigger[EnterBlock]("enter_block", bus),
		ConsumeItem:      NewTrigger[ConsumeItem]("consume_item", bus),
		set:              set,
	}
}

// Validate decodes and validates every criterion of adv without registering
// anything.
func (t *Triggers) Validate(adv Advancement) []Problem {
	r := NewProblemReporter()
	for _, name := range adv.CriterionNames() {
		t.add(r, nil, adv.ID, name, adv.Criteria[name])
	}
	return r.Problems()
}

// Register adds a listener for every criterion of adv to session. Nothing is
// registered if any criterion fails to decode or validate.
func (t *Triggers) Register(session SessionID, adv Advancement) error {
	r := NewProblemReporter()
	var adds []func()
	for _, name := range adv.CriterionNames() {
		if add := t.add(r, &session, adv.ID, name, adv.Criteria[name]); add != nil {
			adds = append(adds, add)
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("advancement %s: %w", adv.ID, err)
	}
	for _, add := range adds {
		add()
	}
	return nil
}

// RemoveAll drops every listener of session.
func (t *Triggers) RemoveAll(session SessionID) {
	t.InventoryChanged.RemoveAll(session)
	t.EnterBlock.RemoveAll(session)
	t.ConsumeItem.RemoveAll(session)
}

func (t *Triggers) add(r *ProblemReporter, session *SessionID, adv, name string, c Criterion) func() {
	cr := r.ForChild("criteria").ForChild(name)
	switch c.Trigger {
	case t.InventoryChanged.Name():
		return addCriterion(t.InventoryChanged, cr, t.set, session, adv, name, &c.Conditions)
	case t.EnterBlock.Name():
		return addCriterion(t.EnterBlock, cr, t.set, session, adv, name, &c.Conditions)
	case t.ConsumeItem.Name():
		return addCriterion(t.ConsumeItem, cr, t.set, session, adv, name, &c.Conditions)
	default:
		cr.ForChild("trigger").Report("unknown trigger %q", c.Trigger)
		return nil
	}
}

func addCriterion[I Instance](tr *Trigger[I], r *ProblemReporter, set *registry.Set, session *SessionID, adv, name string, node *yaml.Node) func() {
	var inst I
	if node.Kind != 0 {
		if err := node.Decode(&inst); err != nil {
			r.ForChild("conditions").Report("%v", err)
			return nil
		}
	}
	inst.Validate(NewCriterionValidator(r.ForChild("conditions"), set))
	if session == nil {
		return nil
	}
	l := Listener[I]{Instance: inst, Advancement: adv, Criterion: name}
	return func() { tr.AddListener(*session, l) }
}

// FireInventoryChanged grants the inventory_changed criteria of session that
// match the inventory after changed was put into it.
func (t *Triggers) FireInventoryChanged(session SessionID, player *LootContext, inv Inventory, changed registry.ItemStack) []Listener[InventoryChanged] {
	return t.InventoryChanged.Fire(session, player, func(i InventoryChanged) bool {
		return i.Matches(inv, changed)
	})
}

func (t *Triggers) FireEnterBlock(session SessionID, player *LootContext, state registry.BlockState) []Listener[EnterBlock] {
	return t.EnterBlock.Fire(session, player, func(i EnterBlock) bool {
		return i.Matches(state)
	})
}

func (t *Triggers) FireConsumeItem(session SessionID, player *LootContext, item registry.ItemStack) []Listener[ConsumeItem] {
	return t.ConsumeItem.Fire(session, player, func(i ConsumeItem) bool {
		return i.Matches(item)
	})
}
