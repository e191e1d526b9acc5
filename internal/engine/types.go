package engine

import (
	"github.com/KirkDiggler/pickupworld/internal/entities"
)

// ClearWorldInput resets the engine for a new episode
type ClearWorldInput struct{}

// ClearWorldOutput is empty
type ClearWorldOutput struct{}

// AddRectRoomInput describes a rectangular room
type AddRectRoomInput struct {
	MinX      float64
	MaxX      float64
	MinZ      float64
	MaxZ      float64
	WallTex   string
	FloorTex  string
	NoCeiling bool
}

// AddRectRoomOutput returns the room handle
type AddRectRoomOutput struct {
	Room *entities.Room
}

// PlaceEntityInput places a non-agent entity
type PlaceEntityInput struct {
	Spec entities.EntitySpec
	Pose *entities.Pose // nil for random placement
}

// PlaceEntityOutput returns the resolved entity
type PlaceEntityOutput struct {
	Entity *entities.PlacedEntity
}

// PlaceAgentInput places the agent
type PlaceAgentInput struct {
	Pose *entities.Pose // nil for random placement
}

// PlaceAgentOutput returns the resolved agent
type PlaceAgentOutput struct {
	Agent *entities.PlacedEntity
}

// StepInput carries one player action
type StepInput struct {
	Action entities.Action
}

// StepOutput is the engine's raw per-tick result
type StepOutput struct {
	Observation *entities.Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        map[string]any
}

// ObserveInput requests the current observation
type ObserveInput struct{}

// ObserveOutput carries the current observation
type ObserveOutput struct {
	Observation *entities.Observation
}

// GetAgentInput requests the agent state
type GetAgentInput struct{}

// GetAgentOutput carries the agent and whatever it is holding
type GetAgentOutput struct {
	Agent    *entities.PlacedEntity
	Carrying *entities.PlacedEntity // nil when empty-handed
}

// ListEntitiesInput requests everything currently in the world
type ListEntitiesInput struct{}

// ListEntitiesOutput lists placed objects (including a carried one) and the agent
type ListEntitiesOutput struct {
	Objects []*entities.PlacedEntity
	Agent   *entities.PlacedEntity
}
