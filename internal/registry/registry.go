// Package registry resolves domain objects to the small integer ids both
// endpoints agree on for one registry snapshot.
package registry

import (
	"fmt"
	"io"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/protocol"
)

// Registry assigns dense ids in registration order.
type Registry[T comparable] struct {
	name   string
	byID   []T
	names  []string
	ids    map[T]int32
	byName map[string]int32
}

func New[T comparable](name string) *Registry[T] {
	return &Registry[T]{
		name:   name,
		ids:    make(map[T]int32),
		byName: make(map[string]int32),
	}
}

func (r *Registry[T]) Name() string {
	return r.name
}

// Register appends v under key and returns its id.
func (r *Registry[T]) Register(key string, v T) (int32, error) {
	if _, ok := r.byName[key]; ok {
		return 0, fmt.Errorf("registry %s: duplicate key %q", r.name, key)
	}
	if _, ok := r.ids[v]; ok {
		return 0, fmt.Errorf("registry %s: value for %q already registered", r.name, key)
	}
	id := int32(len(r.byID))
	r.byID = append(r.byID, v)
	r.names = append(r.names, key)
	r.ids[v] = id
	r.byName[key] = id
	return id, nil
}

func (r *Registry[T]) ID(v T) (int32, bool) {
	id, ok := r.ids[v]
	return id, ok
}

func (r *Registry[T]) ByID(id int32) (T, bool) {
	if id < 0 || int(id) >= len(r.byID) {
		var zero T
		return zero, false
	}
	return r.byID[id], true
}

func (r *Registry[T]) ByName(key string) (T, bool) {
	id, ok := r.byName[key]
	if !ok {
		var zero T
		return zero, false
	}
	return r.byID[id], true
}

func (r *Registry[T]) Key(v T) (string, bool) {
	id, ok := r.ids[v]
	if !ok {
		return "", false
	}
	return r.names[id], true
}

func (r *Registry[T]) Len() int {
	return len(r.byID)
}

// Keys returns entry names in id order.
func (r *Registry[T]) Keys() []string {
	return append([]string(nil), r.names...)
}

// Codec writes a registered value as its varint id. Decoding an id this
// snapshot does not know fails with protocol.ErrRegistryMiss.
func (r *Registry[T]) Codec() codec.Codec[T] {
	return codec.Of(
		func(rd io.Reader) (T, error) {
			id, err := protocol.ReadVarint(rd)
			if err != nil {
				var zero T
				return zero, err
			}
			v, ok := r.ByID(id)
			if !ok {
				return v, fmt.Errorf("%w: %s id %d (size %d)", protocol.ErrRegistryMiss, r.name, id, len(r.byID))
			}
			return v, nil
		},
		func(w io.Writer, v T) error {
			id, ok := r.ids[v]
			if !ok {
				return fmt.Errorf("registry %s: %v is not registered", r.name, v)
			}
			return protocol.WriteVarint(w, id)
		},
	)
}
