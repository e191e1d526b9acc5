// Package pickup implements the PickupObjects episodic environment: a room of
// randomly colored balls, boxes and keys whose layout is generated on the
// first reset and replayed exactly on every reset after that. The episode
// terminates on the first tick the agent is carrying an object.
package pickup

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pickupworld/internal/engine"
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// Defaults for a new environment
const (
	MinSize        = 2.0
	DefaultSize    = 12.0
	DefaultNumObjs = 5
)

// State is the episode state of an environment
type State int

// Episode states
const (
	// StateIdle means no episode has been started
	StateIdle State = iota
	// StateRunning means an episode accepts steps
	StateRunning
	// StateTerminated is entered on the first pickup
	StateTerminated
	// StateTruncated is entered when the engine truncates the episode
	StateTruncated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Config holds the dependencies and parameters of one environment instance.
// Size and NumObjs are fixed for the lifetime of the instance.
type Config struct {
	Engine  engine.Engine
	Roller  dice.Roller
	Size    float64
	NumObjs int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	errors.ValidateMinFloat("Size", c.Size, MinSize, vb)
	errors.ValidateMinInt("NumObjs", c.NumObjs, 0, vb)

	return vb.Build()
}

// ResetOutput is the start of a new episode
type ResetOutput struct {
	Observation *entities.Observation
	Layout      *entities.Layout
	// Generated is true only for the reset that created the layout
	Generated bool
}

// Env is one environment instance. It owns its layout record and pickup
// counter and must not be shared between concurrent callers.
type Env struct {
	engine  engine.Engine
	roller  dice.Roller
	size    float64
	numObjs int

	layout   *entities.Layout
	pickedUp int
	state    State
}

// New creates an environment instance with an empty layout record
func New(cfg *Config) (*Env, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Env{
		engine:  cfg.Engine,
		roller:  cfg.Roller,
		size:    cfg.Size,
		numObjs: cfg.NumObjs,
		state:   StateIdle,
	}, nil
}

// Reset rebuilds the room and populates it. The first call draws a random
// layout and records it; every later call replays the recorded layout.
func (e *Env) Reset(ctx context.Context) (*ResetOutput, error) {
	e.state = StateIdle

	if _, err := e.engine.ClearWorld(ctx, &engine.ClearWorldInput{}); err != nil {
		return nil, errors.Wrap(err, "failed to clear world")
	}

	if _, err := e.engine.AddRectRoom(ctx, &engine.AddRectRoomInput{
		MinX:      0,
		MaxX:      e.size,
		MinZ:      0,
		MaxZ:      e.size,
		WallTex:   entities.WallTexBrick,
		FloorTex:  entities.FloorTexAsphalt,
		NoCeiling: true,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to add room")
	}

	generated := false
	if e.layout == nil {
		layout, err := e.generate(ctx)
		if err != nil {
			return nil, err
		}
		e.layout = layout
		generated = true
	} else if err := e.replay(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "layout replay diverged")
	}

	e.pickedUp = 0
	e.state = StateRunning

	obs, err := e.engine.Observe(ctx, &engine.ObserveInput{})
	if err != nil {
		e.state = StateIdle
		return nil, errors.Wrap(err, "failed to observe world")
	}

	return &ResetOutput{
		Observation: obs.Observation,
		Layout:      e.layout.Clone(),
		Generated:   generated,
	}, nil
}

// generate draws kind and color for every object, lets the engine search for
// poses, and records what it resolved. The agent is placed and recorded last.
func (e *Env) generate(ctx context.Context) (*entities.Layout, error) {
	kinds := entities.PlaceableKinds()
	palette := entities.Palette()

	layout := &entities.Layout{Entries: make([]entities.LayoutEntry, 0, e.numObjs+1)}
	for i := 0; i < e.numObjs; i++ {
		k, err := e.roller.Roll(len(kinds))
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw object kind")
		}
		c, err := e.roller.Roll(len(palette))
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw object color")
		}
		kind, color := kinds[k-1], palette[c-1]

		out, err := e.engine.PlaceEntity(ctx, &engine.PlaceEntityInput{Spec: kind.Spec(color)})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to place object %d", i)
		}
		layout.Entries = append(layout.Entries, entities.LayoutEntry{
			Kind:  kind,
			Color: color,
			Pose:  out.Entity.Pose,
		})
	}

	out, err := e.engine.PlaceAgent(ctx, &engine.PlaceAgentInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place agent")
	}
	layout.Entries = append(layout.Entries, entities.LayoutEntry{
		Kind: entities.KindAgent,
		Pose: out.Agent.Pose,
	})

	return layout, nil
}

// replay places every recorded entry at its recorded pose
func (e *Env) replay(ctx context.Context) error {
	for i, entry := range e.layout.Entries {
		pose := entry.Pose
		if entry.Kind == entities.KindAgent {
			if _, err := e.engine.PlaceAgent(ctx, &engine.PlaceAgentInput{Pose: &pose}); err != nil {
				return errors.Wrap(err, "failed to replay agent")
			}
			continue
		}

		if _, err := e.engine.PlaceEntity(ctx, &engine.PlaceEntityInput{
			Spec: entry.Kind.Spec(entry.Color),
			Pose: &pose,
		}); err != nil {
			return errors.Wrapf(err, "failed to replay entry %d", i)
		}
	}
	return nil
}

// Step delegates the action to the engine. If the agent is carrying
// something afterwards the result is forced terminal and info["event"] names
// the carried object; otherwise the engine result passes through untouched.
func (e *Env) Step(ctx context.Context, action entities.Action) (*entities.StepResult, error) {
	if !action.Valid() {
		return nil, errors.InvalidArgumentf("invalid action %d", int(action))
	}
	switch e.state {
	case StateIdle:
		return nil, errors.FailedPrecondition("environment has not been reset")
	case StateTerminated, StateTruncated:
		return nil, errors.FailedPreconditionf("episode is %s, reset to continue", e.state)
	}

	out, err := e.engine.Step(ctx, &engine.StepInput{Action: action})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to step %s", action)
	}

	result := &entities.StepResult{
		Observation: out.Observation,
		Reward:      out.Reward,
		Terminated:  out.Terminated,
		Truncated:   out.Truncated,
		Info:        out.Info,
	}

	agent, err := e.engine.GetAgent(ctx, &engine.GetAgentInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get agent")
	}

	if agent.Carrying != nil {
		if result.Info == nil {
			result.Info = make(map[string]any)
		}
		result.Terminated = true
		result.Info[entities.InfoKeyEvent] = agent.Carrying.Spec.MeshName()
	}

	switch {
	case result.Terminated:
		e.state = StateTerminated
	case result.Truncated:
		e.state = StateTruncated
	}

	return result, nil
}

// Layout returns a copy of the recorded layout, nil before the first reset
func (e *Env) Layout() *entities.Layout {
	return e.layout.Clone()
}

// Abort ends the current episode without a result. The recorded layout is
// kept, so the next reset replays it.
func (e *Env) Abort() {
	e.state = StateIdle
}

// PickedUp returns the per-episode pickup counter
func (e *Env) PickedUp() int {
	return e.pickedUp
}

// State returns the episode state
func (e *Env) State() State {
	return e.state
}

// Size returns the room side length
func (e *Env) Size() float64 {
	return e.size
}

// NumObjs returns the configured object count
func (e *Env) NumObjs() int {
	return e.numObjs
}
