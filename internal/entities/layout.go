package entities

import (
	"fmt"
)

// LayoutEntry records one resolved placement
type LayoutEntry struct {
	Kind  ObjectKind `json:"kind"`
	Color Color      `json:"color,omitempty"`
	Pose  Pose       `json:"pose"`
}

// Layout is the ordered placement record for an environment instance:
// every object in placement order, then the agent.
type Layout struct {
	Entries []LayoutEntry `json:"entries"`
}

// Len returns the number of entries; a nil layout is empty
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// Objects returns the object entries (everything before the agent)
func (l *Layout) Objects() []LayoutEntry {
	if l.Len() == 0 {
		return nil
	}
	objs := make([]LayoutEntry, 0, len(l.Entries)-1)
	for _, e := range l.Entries {
		if e.Kind != KindAgent {
			objs = append(objs, e)
		}
	}
	return objs
}

// Agent returns the agent entry
func (l *Layout) Agent() (LayoutEntry, bool) {
	if l.Len() == 0 {
		return LayoutEntry{}, false
	}
	last := l.Entries[len(l.Entries)-1]
	return last, last.Kind == KindAgent
}

// Clone returns a deep copy
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	entries := make([]LayoutEntry, len(l.Entries))
	copy(entries, l.Entries)
	return &Layout{Entries: entries}
}

// Equal compares kind, color, position and heading of every entry
func (l *Layout) Equal(other *Layout) bool {
	if l.Len() != other.Len() {
		return false
	}
	for i := range l.Entries {
		if l.Entries[i] != other.Entries[i] {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants: placeable objects with palette
// colors, followed by exactly one agent entry.
func (l *Layout) Validate() error {
	if l.Len() == 0 {
		return fmt.Errorf("layout is empty")
	}
	last := len(l.Entries) - 1
	for i, e := range l.Entries {
		if i == last {
			if e.Kind != KindAgent {
				return fmt.Errorf("entry %d: last entry must be the agent, got %s", i, e.Kind)
			}
			continue
		}
		if !e.Kind.Placeable() {
			return fmt.Errorf("entry %d: kind %s is not placeable", i, e.Kind)
		}
		if !e.Color.Valid() {
			return fmt.Errorf("entry %d: color %q is not in the palette", i, e.Color)
		}
	}
	return nil
}
