// Package engine defines the world simulation engine the pickup environment
// runs on: room construction, entity placement, the generic step delegate and
// agent carry state.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/pickupworld/internal/engine Engine

import (
	"context"
)

// Engine provides world construction, placement and stepping
type Engine interface {
	// World lifecycle
	ClearWorld(ctx context.Context, input *ClearWorldInput) (*ClearWorldOutput, error)
	AddRectRoom(ctx context.Context, input *AddRectRoomInput) (*AddRectRoomOutput, error)

	// Placement primitives. A nil pose searches for a random valid pose; a
	// supplied pose is verified and used as-is.
	PlaceEntity(ctx context.Context, input *PlaceEntityInput) (*PlaceEntityOutput, error)
	PlaceAgent(ctx context.Context, input *PlaceAgentInput) (*PlaceAgentOutput, error)

	// Generic step delegate and observation
	Step(ctx context.Context, input *StepInput) (*StepOutput, error)
	Observe(ctx context.Context, input *ObserveInput) (*ObserveOutput, error)

	// Queries
	GetAgent(ctx context.Context, input *GetAgentInput) (*GetAgentOutput, error)
	ListEntities(ctx context.Context, input *ListEntitiesInput) (*ListEntitiesOutput, error)
}
