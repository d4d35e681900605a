package registry

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Set is one registry snapshot, shared identically by both endpoints of a
// connection.
type Set struct {
	Version     int
	Blocks      *Registry[Block]
	Items       *Registry[Item]
	EntityTypes *Registry[EntityType]
	Sounds      *Registry[SoundEvent]
}

// Snapshot is the on-disk form of a Set: entry names per registry, in id order.
type Snapshot struct {
	Version     int      `yaml:"version"`
	Blocks      []string `yaml:"blocks"`
	Items       []string `yaml:"items"`
	EntityTypes []string `yaml:"entity_types"`
	Sounds      []string `yaml:"sound_events"`
}

func NewSet() *Set {
	return &Set{
		Blocks:      New[Block]("block"),
		Items:       New[Item]("item"),
		EntityTypes: New[EntityType]("entity_type"),
		Sounds:      New[SoundEvent]("sound_event"),
	}
}

func LoadSnapshot(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}

func ParseSnapshot(data []byte) (*Set, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse registry snapshot: %w", err)
	}
	return FromSnapshot(snap)
}

func FromSnapshot(snap Snapshot) (*Set, error) {
	s := NewSet()
	s.Version = snap.Version
	for _, name := range snap.Blocks {
		if _, err := s.Blocks.Register(name, Block{Name: name}); err != nil {
			return nil, err
		}
	}
	for _, name := range snap.Items {
		if _, err := s.Items.Register(name, Item{Name: name}); err != nil {
			return nil, err
		}
	}
	for _, name := range snap.EntityTypes {
		if _, err := s.EntityTypes.Register(name, EntityType{Name: name}); err != nil {
			return nil, err
		}
	}
	for _, name := range snap.Sounds {
		if _, err := s.Sounds.Register(name, SoundEvent{Name: name}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) Snapshot() Snapshot {
	return Snapshot{
		Version:     s.Version,
		Blocks:      s.Blocks.Keys(),
		Items:       s.Items.Keys(),
		EntityTypes: s.EntityTypes.Keys(),
		Sounds:      s.Sounds.Keys(),
	}
}

// Keys returns the entry names of the registry called name.
func (s *Set) Keys(name string) ([]string, bool) {
	switch name {
	case s.Blocks.Name():
		return s.Blocks.Keys(), true
	case s.Items.Name():
		return s.Items.Keys(), true
	case s.EntityTypes.Name():
		return s.EntityTypes.Keys(), true
	case s.Sounds.Name():
		return s.Sounds.Keys(), true
	}
	return nil, false
}

// Names lists the registries in the set.
func (s *Set) Names() []string {
	return []string{s.Blocks.Name(), s.Items.Name(), s.EntityTypes.Name(), s.Sounds.Name()}
}

// Fingerprint hashes every registry's contents in id order. Two endpoints
// with equal fingerprints resolve every id identically.
func (s *Set) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(s.Version))
	for _, name := range s.Names() {
		keys, _ := s.Keys(name)
		_, _ = d.WriteString("\x00" + name)
		for _, k := range keys {
			_, _ = d.WriteString("\x01" + k)
		}
	}
	return d.Sum64()
}
