package rpgtoolkit

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/pickupworld/internal/entities"
)

// LayoutEntity wraps one layout entry to implement core.Entity
type LayoutEntity struct {
	id    string
	entry entities.LayoutEntry
}

// Compile-time check that the wrapper implements core.Entity
var _ core.Entity = (*LayoutEntity)(nil)

// GetID returns the entity's ID: the agent is "agent", objects are
// "<mesh>_<index>" in placement order
func (e *LayoutEntity) GetID() string {
	return e.id
}

// GetType returns the entity kind, e.g. "ball"
func (e *LayoutEntity) GetType() string {
	return e.entry.Kind.String()
}

// Entry returns the wrapped layout entry
func (e *LayoutEntity) Entry() entities.LayoutEntry {
	return e.entry
}

// wrapEntry converts the i-th layout entry to a LayoutEntity
func wrapEntry(i int, entry entities.LayoutEntry) *LayoutEntity {
	if entry.Kind == entities.KindAgent {
		return &LayoutEntity{id: entities.KindAgent.String(), entry: entry}
	}
	return &LayoutEntity{
		id:    fmt.Sprintf("%s_%d", entry.Kind.Spec(entry.Color).MeshName(), i),
		entry: entry,
	}
}
