package registry

import (
	"fmt"
	"io"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/protocol"
)

// MaxStackCount bounds the count of an item stack on the wire.
const MaxStackCount = 99

// ItemStackCodec writes a varint count followed, for a non-empty stack, by
// the item id. An empty stack is a single zero byte.
func ItemStackCodec(items *Registry[Item]) codec.Codec[ItemStack] {
	item := codec.Field("item", items.Codec())
	return codec.Of(
		func(r io.Reader) (ItemStack, error) {
			count, err := protocol.ReadVarint(r)
			if err != nil {
				return ItemStack{}, protocol.WithField("count", err)
			}
			if count <= 0 {
				return ItemStack{}, nil
			}
			if count > MaxStackCount {
				return ItemStack{}, protocol.WithField("count",
					fmt.Errorf("%w: stack of %d > %d", protocol.ErrSizeLimit, count, MaxStackCount))
			}
			it, err := item.Decode(r)
			if err != nil {
				return ItemStack{}, err
			}
			return ItemStack{Item: it, Count: count}, nil
		},
		func(w io.Writer, s ItemStack) error {
			if s.IsEmpty() {
				return protocol.WriteVarint(w, 0)
			}
			if s.Count > MaxStackCount {
				return protocol.WithField("count",
					fmt.Errorf("%w: stack of %d > %d", protocol.ErrSizeLimit, s.Count, MaxStackCount))
			}
			if err := protocol.WriteVarint(w, s.Count); err != nil {
				return err
			}
			return item.Encode(w, s.Item)
		},
	)
}
