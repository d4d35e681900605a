package registry

import "sort"

type Block struct {
	Name string
}

type Item struct {
	Name string
}

type EntityType struct {
	Name string
}

type SoundEvent struct {
	Name string
}

// ItemStack is a count of one item. A zero count is the empty stack.
type ItemStack struct {
	Item  Item
	Count int32
}

func (s ItemStack) IsEmpty() bool {
	return s.Count <= 0 || s.Item.Name == "" || s.Item.Name == "minecraft:air"
}

// BlockState is a block together with its state properties.
type BlockState struct {
	Block      Block
	Properties map[string]string
}

// PropertyKeys returns the property names in a stable order.
func (s BlockState) PropertyKeys() []string {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
