package advancement

import (
	"fmt"

	"github.com/Versifine/mcwire/internal/bounds"
	"github.com/Versifine/mcwire/internal/registry"
)

// FullStackCount is the count at which a slot counts as full.
const FullStackCount = 64

type Inventory []registry.ItemStack

// Slots counts full, empty and occupied slots.
func (inv Inventory) Slots() (full, empty, occupied int) {
	for _, s := range inv {
		switch {
		case s.IsEmpty():
			empty++
		case s.Count >= FullStackCount:
			full++
			occupied++
		default:
			occupied++
		}
	}
	return full, empty, occupied
}

func (inv Inventory) NonEmpty() []registry.ItemStack {
	out := make([]registry.ItemStack, 0, len(inv))
	for _, s := range inv {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

type SlotsPredicate struct {
	Occupied bounds.Ints `yaml:"occupied,omitempty"`
	Full     bounds.Ints `yaml:"full,omitempty"`
	Empty    bounds.Ints `yaml:"empty,omitempty"`
}

func (p SlotsPredicate) Matches(inv Inventory) bool {
	full, empty, occupied := inv.Slots()
	return p.Full.Matches(int64(full)) && p.Empty.Matches(int64(empty)) && p.Occupied.Matches(int64(occupied))
}

// InventoryChanged fires when a slot of the player's inventory changes.
// With one item predicate only the changed stack is tested; with several,
// each has to match some non-empty slot.
type InventoryChanged struct {
	PlayerPredicate *ContextAwarePredicate                                 `yaml:"player,omitempty"`
	Slots           SlotsPredicate                                         `yaml:"slots,omitempty"`
	Items           CollectionContents[registry.ItemStack, *ItemPredicate] `yaml:"items,omitempty"`
	ItemCounts      CollectionCounts[registry.ItemStack, *ItemPredicate]   `yaml:"item_counts,omitempty"`
}

func (i InventoryChanged) Player() *ContextAwarePredicate { return i.PlayerPredicate }

func (i InventoryChanged) Validate(v *CriterionValidator) {
	v.ValidateEntity("player", i.PlayerPredicate)
	v.ValidateItems("items", i.Items)
	for n, e := range i.ItemCounts {
		v.ValidateItem(fmt.Sprintf("item_counts[%d].test", n), e.Test)
	}
}

func (i InventoryChanged) Matches(inv Inventory, changed registry.ItemStack) bool {
	if !i.Slots.Matches(inv) {
		return false
	}
	items := inv.NonEmpty()
	if !i.ItemCounts.Matches(items) {
		return false
	}
	switch len(i.Items) {
	case 0:
		return true
	case 1:
		return !changed.IsEmpty() && i.Items[0].Matches(changed)
	default:
		return i.Items.Matches(items)
	}
}

// EnterBlock fires when the player moves into a block.
type EnterBlock struct {
	PlayerPredicate *ContextAwarePredicate `yaml:"player,omitempty"`
	Block           string                 `yaml:"block,omitempty"`
	State           map[string]string      `yaml:"state,omitempty"`
}

func (i EnterBlock) Player() *ContextAwarePredicate { return i.PlayerPredicate }

func (i EnterBlock) Validate(v *CriterionValidator) {
	v.ValidateEntity("player", i.PlayerPredicate)
	v.ValidateBlock("block", i.Block)
}

func (i EnterBlock) Matches(s registry.BlockState) bool {
	if i.Block != "" && s.Block.Name != i.Block {
		return false
	}
	return matchState(i.State, s)
}

// ConsumeItem fires when the player finishes eating or drinking an item.
type ConsumeItem struct {
	PlayerPredicate *ContextAwarePredicate `yaml:"player,omitempty"`
	Item            *ItemPredicate         `yaml:"item,omitempty"`
}

func (i ConsumeItem) Player() *ContextAwarePredicate { return i.PlayerPredicate }

func (i ConsumeItem) Validate(v *CriterionValidator) {
	v.ValidateEntity("player", i.PlayerPredicate)
	v.ValidateItem("item", i.Item)
}

func (i ConsumeItem) Matches(s registry.ItemStack) bool {
	return i.Item.Matches(s)
}
