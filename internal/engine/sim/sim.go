// Package sim is an in-process, seeded implementation of engine.Engine.
// It models the room as a flat rectangle and entities as discs; nothing is
// rendered.
package sim

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/KirkDiggler/pickupworld/internal/engine"
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
)

const (
	forwardStep = 0.15
	turnStep    = 15.0 * math.Pi / 180.0

	// pickup probe geometry, in agent radii
	pickupReach  = 1.5
	pickupRadius = 1.2

	// DefaultMaxEpisodeSteps truncates an episode
	DefaultMaxEpisodeSteps = 400
	// DefaultMaxPlacementAttempts bounds the random placement search
	DefaultMaxPlacementAttempts = 1000

	agentID = "agent"
)

// Config configures the simulator
type Config struct {
	// Rand drives random placement. A nil Rand is seeded from the wall clock.
	Rand                 *rand.Rand
	MaxEpisodeSteps      int
	MaxPlacementAttempts int
}

// Engine is the simulator. It is not safe for concurrent use; callers own
// one engine per environment instance.
type Engine struct {
	rng         *rand.Rand
	maxSteps    int
	maxAttempts int
	entityIDs   *idgen.SequentialGenerator
	rooms       []entities.Room
	objects     []*entities.PlacedEntity
	agent       *entities.PlacedEntity
	carrying    *entities.PlacedEntity
	stepCount   int
}

// New creates a simulator
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMinInt("MaxEpisodeSteps", cfg.MaxEpisodeSteps, 0, vb)
	errors.ValidateMinInt("MaxPlacementAttempts", cfg.MaxPlacementAttempts, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid simulator config")
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxSteps := cfg.MaxEpisodeSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxEpisodeSteps
	}
	maxAttempts := cfg.MaxPlacementAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxPlacementAttempts
	}

	return &Engine{
		rng:         rng,
		maxSteps:    maxSteps,
		maxAttempts: maxAttempts,
		entityIDs:   idgen.NewSequential("ent"),
	}, nil
}

// Verify that Engine implements engine.Engine
var _ engine.Engine = (*Engine)(nil)

// ClearWorld drops all rooms and entities and zeroes the step counter
func (e *Engine) ClearWorld(_ context.Context, _ *engine.ClearWorldInput) (*engine.ClearWorldOutput, error) {
	e.rooms = nil
	e.objects = nil
	e.agent = nil
	e.carrying = nil
	e.stepCount = 0
	e.entityIDs.Reset()
	return &engine.ClearWorldOutput{}, nil
}

// AddRectRoom adds an axis-aligned room
func (e *Engine) AddRectRoom(_ context.Context, input *engine.AddRectRoomInput) (*engine.AddRectRoomOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxX <= input.MinX || input.MaxZ <= input.MinZ {
		return nil, errors.InvalidArgumentf("room extents are empty: x=[%v,%v] z=[%v,%v]",
			input.MinX, input.MaxX, input.MinZ, input.MaxZ)
	}

	room := entities.Room{
		MinX:      input.MinX,
		MaxX:      input.MaxX,
		MinZ:      input.MinZ,
		MaxZ:      input.MaxZ,
		WallTex:   input.WallTex,
		FloorTex:  input.FloorTex,
		NoCeiling: input.NoCeiling,
	}
	e.rooms = append(e.rooms, room)

	return &engine.AddRectRoomOutput{Room: &room}, nil
}

// PlaceEntity places an object, searching for a pose when none is supplied
func (e *Engine) PlaceEntity(_ context.Context, input *engine.PlaceEntityInput) (*engine.PlaceEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Spec.Kind.Placeable() {
		return nil, errors.InvalidArgumentf("cannot place entity of kind %s", input.Spec.Kind)
	}

	pose, err := e.resolvePose(input.Spec, input.Pose)
	if err != nil {
		return nil, err
	}

	ent := &entities.PlacedEntity{
		ID:   e.entityIDs.Generate(),
		Spec: input.Spec,
		Pose: pose,
	}
	e.objects = append(e.objects, ent)

	placed := *ent
	return &engine.PlaceEntityOutput{Entity: &placed}, nil
}

// PlaceAgent places the agent, replacing any previous agent pose
func (e *Engine) PlaceAgent(_ context.Context, input *engine.PlaceAgentInput) (*engine.PlaceAgentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	spec := entities.KindAgent.Spec("")
	e.agent = nil
	pose, err := e.resolvePose(spec, input.Pose)
	if err != nil {
		return nil, err
	}

	e.agent = &entities.PlacedEntity{ID: agentID, Spec: spec, Pose: pose}

	placed := *e.agent
	return &engine.PlaceAgentOutput{Agent: &placed}, nil
}

// Step applies one action and reports the raw tick result. The simulator
// never terminates an episode on its own; it truncates at the step limit.
func (e *Engine) Step(_ context.Context, input *engine.StepInput) (*engine.StepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if e.agent == nil {
		return nil, errors.FailedPrecondition("agent has not been placed")
	}

	switch input.Action {
	case entities.ActionTurnLeft:
		e.turn(turnStep)
	case entities.ActionTurnRight:
		e.turn(-turnStep)
	case entities.ActionMoveForward:
		e.move(forwardStep)
	case entities.ActionMoveBack:
		e.move(-forwardStep)
	case entities.ActionPickup:
		e.pickup()
	default:
		return nil, errors.InvalidArgumentf("invalid action %d", int(input.Action))
	}

	e.stepCount++

	return &engine.StepOutput{
		Observation: e.observe(),
		Reward:      0,
		Terminated:  false,
		Truncated:   e.stepCount >= e.maxSteps,
		Info:        map[string]any{},
	}, nil
}

// Observe returns the current observation
func (e *Engine) Observe(_ context.Context, _ *engine.ObserveInput) (*engine.ObserveOutput, error) {
	if e.agent == nil {
		return nil, errors.FailedPrecondition("agent has not been placed")
	}
	return &engine.ObserveOutput{Observation: e.observe()}, nil
}

// GetAgent returns the agent and its carried entity, if any
func (e *Engine) GetAgent(_ context.Context, _ *engine.GetAgentInput) (*engine.GetAgentOutput, error) {
	if e.agent == nil {
		return nil, errors.FailedPrecondition("agent has not been placed")
	}

	agent := *e.agent
	out := &engine.GetAgentOutput{Agent: &agent}
	if e.carrying != nil {
		carried := *e.carrying
		out.Carrying = &carried
	}
	return out, nil
}

// ListEntities returns copies of every object and the agent
func (e *Engine) ListEntities(_ context.Context, _ *engine.ListEntitiesInput) (*engine.ListEntitiesOutput, error) {
	out := &engine.ListEntitiesOutput{
		Objects: make([]*entities.PlacedEntity, 0, len(e.objects)),
	}
	for _, obj := range e.objects {
		cp := *obj
		out.Objects = append(out.Objects, &cp)
	}
	if e.agent != nil {
		agent := *e.agent
		out.Agent = &agent
	}
	return out, nil
}

// resolvePose verifies a supplied pose or searches for a random one
func (e *Engine) resolvePose(spec entities.EntitySpec, pose *entities.Pose) (entities.Pose, error) {
	if len(e.rooms) == 0 {
		return entities.Pose{}, errors.FailedPrecondition("no room to place entity in")
	}

	if pose != nil {
		resolved := entities.Pose{Pos: entities.Vec3{X: pose.Pos.X, Z: pose.Pos.Z}, Dir: pose.Dir}
		if !e.fits(resolved.Pos, spec.Radius, nil) {
			return entities.Pose{}, errors.FailedPrecondition("supplied pose is out of bounds or overlaps another entity").
				WithMeta("kind", spec.Kind.String()).
				WithMeta("x", pose.Pos.X).
				WithMeta("z", pose.Pos.Z)
		}
		return resolved, nil
	}

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		room := e.rooms[e.rng.Intn(len(e.rooms))]
		loX, hiX := room.MinX+spec.Radius, room.MaxX-spec.Radius
		loZ, hiZ := room.MinZ+spec.Radius, room.MaxZ-spec.Radius
		if hiX < loX || hiZ < loZ {
			continue
		}

		pos := entities.Vec3{
			X: loX + e.rng.Float64()*(hiX-loX),
			Z: loZ + e.rng.Float64()*(hiZ-loZ),
		}
		dir := e.rng.Float64()*2*math.Pi - math.Pi

		if e.fits(pos, spec.Radius, nil) {
			return entities.Pose{Pos: pos, Dir: dir}, nil
		}
	}

	return entities.Pose{}, errors.ResourceExhausted("no valid position for entity").
		WithMeta("kind", spec.Kind.String()).
		WithMeta("attempts", e.maxAttempts)
}

// fits reports whether a disc is inside some room and clear of every entity
// on the floor. ignore is skipped (used for the moving agent).
func (e *Engine) fits(pos entities.Vec3, radius float64, ignore *entities.PlacedEntity) bool {
	inside := false
	for _, room := range e.rooms {
		if room.Contains(pos, radius) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}

	for _, obj := range e.objects {
		if obj == e.carrying || obj == ignore {
			continue
		}
		if pos.DistXZ(obj.Pose.Pos) < radius+obj.Spec.Radius {
			return false
		}
	}
	if e.agent != nil && e.agent != ignore {
		if pos.DistXZ(e.agent.Pose.Pos) < radius+e.agent.Spec.Radius {
			return false
		}
	}
	return true
}

func (e *Engine) turn(angle float64) {
	e.agent.Pose.Dir += angle
	e.syncCarried()
}

// move steps the agent along its heading; blocked moves are dropped
func (e *Engine) move(dist float64) {
	next := e.agent.Pose.Pos.Add(e.agent.Pose.DirVec().Scale(dist))
	if !e.fits(next, e.agent.Spec.Radius, e.agent) {
		return
	}
	e.agent.Pose.Pos = next
	e.syncCarried()
}

// pickup grabs the first object touching the probe in front of the agent
func (e *Engine) pickup() {
	if e.carrying != nil {
		return
	}

	r := e.agent.Spec.Radius
	probe := e.agent.Pose.Pos.Add(e.agent.Pose.DirVec().Scale(pickupReach * r))
	for _, obj := range e.objects {
		if probe.DistXZ(obj.Pose.Pos) < pickupRadius*r+obj.Spec.Radius {
			e.carrying = obj
			e.syncCarried()
			return
		}
	}
}

// syncCarried keeps a carried object above the agent
func (e *Engine) syncCarried() {
	if e.carrying == nil {
		return
	}
	e.carrying.Pose = entities.Pose{
		Pos: entities.Vec3{X: e.agent.Pose.Pos.X, Y: e.agent.Spec.Height, Z: e.agent.Pose.Pos.Z},
		Dir: e.agent.Pose.Dir,
	}
}

func (e *Engine) observe() *entities.Observation {
	obs := &entities.Observation{
		Agent:     e.agent.Pose,
		Entities:  make([]entities.PlacedEntity, 0, len(e.objects)),
		StepCount: e.stepCount,
	}
	if e.carrying != nil {
		obs.Carrying = e.carrying.Spec.MeshName()
	}
	for _, obj := range e.objects {
		if obj == e.carrying {
			continue
		}
		obs.Entities = append(obs.Entities, *obj)
	}
	return obs
}
