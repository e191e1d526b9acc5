// Package session manages many independent PickupObjects environments. Each
// session owns one environment instance with its own seeded random source
// and layout record; calls on the same session never overlap.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/pickupworld/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/pickupworld/internal/engine"
	"github.com/KirkDiggler/pickupworld/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/pickupworld/internal/engine/sim"
	"github.com/KirkDiggler/pickupworld/internal/environments/pickup"
	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
	"github.com/KirkDiggler/pickupworld/internal/pkg/roller"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
	"github.com/KirkDiggler/pickupworld/internal/repositories/layouts"
)

// Service defines the interface for environment session operations
type Service interface {
	// CreateSession builds a new environment instance
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession describes a live session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Reset starts a new episode, generating the layout on the first call
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// Step applies one action to the running episode
	Step(ctx context.Context, input *StepInput) (*StepOutput, error)

	// GetLayout returns the recorded layout
	GetLayout(ctx context.Context, input *GetLayoutInput) (*GetLayoutOutput, error)

	// GetOverview projects the recorded layout onto a hex grid room
	GetOverview(ctx context.Context, input *GetOverviewInput) (*GetOverviewOutput, error)

	// ListEpisodes returns the finished episodes of a session
	ListEpisodes(ctx context.Context, input *ListEpisodesInput) (*ListEpisodesOutput, error)

	// CloseSession drops the instance and its layout record
	CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error)
}

// EngineFactory builds the engine for a new session
type EngineFactory func(seed int64, maxEpisodeSteps int) (engine.Engine, error)

// SimEngineFactory builds the in-process simulator
func SimEngineFactory(seed int64, maxEpisodeSteps int) (engine.Engine, error) {
	return sim.New(&sim.Config{
		Rand:            rand.New(rand.NewSource(seed)),
		MaxEpisodeSteps: maxEpisodeSteps,
	})
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	IDGenerator   idgen.Generator
	Clock         clock.Clock
	LayoutRepo    layouts.Repository
	EpisodeRepo   episodes.Repository
	EngineFactory EngineFactory
	Overview      *rpgtoolkit.Projector
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.LayoutRepo == nil {
		vb.RequiredField("LayoutRepo")
	}
	if c.EpisodeRepo == nil {
		vb.RequiredField("EpisodeRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen         idgen.Generator
	clock         clock.Clock
	layoutRepo    layouts.Repository
	episodeRepo   episodes.Repository
	engineFactory EngineFactory
	overview      *rpgtoolkit.Projector

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// sessionState is one environment instance and its episode bookkeeping.
// mu serializes every call on the instance.
type sessionState struct {
	mu sync.Mutex

	id              string
	env             *pickup.Env
	seed            int64
	maxEpisodeSteps int
	createdAt       time.Time

	episode     int
	steps       int
	totalReward float64
	startedAt   time.Time
	lastEvent   string
	recorded    bool
	layoutSaved bool
	closed      bool
}

// NewOrchestrator creates a new session orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	factory := cfg.EngineFactory
	if factory == nil {
		factory = SimEngineFactory
	}
	overview := cfg.Overview
	if overview == nil {
		overview = rpgtoolkit.NewProjector()
	}

	return &orchestrator{
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		layoutRepo:    cfg.LayoutRepo,
		episodeRepo:   cfg.EpisodeRepo,
		engineFactory: factory,
		overview:      overview,
		sessions:      make(map[string]*sessionState),
	}, nil
}

// CreateSession builds a new environment instance
func (o *orchestrator) CreateSession(_ context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMinFloat("Size", input.Size, pickup.MinSize, vb)
	errors.ValidateMinInt("NumObjs", input.NumObjs, 0, vb)
	errors.ValidateMinInt("MaxEpisodeSteps", input.MaxEpisodeSteps, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	// one seed fans out into independent streams for the layout draws and
	// the engine's placement search
	master := roller.NewSeeded(seed)
	envRoller := roller.NewSeeded(master.Int63())

	eng, err := o.engineFactory(master.Int63(), input.MaxEpisodeSteps)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	env, err := pickup.New(&pickup.Config{
		Engine:  eng,
		Roller:  envRoller,
		Size:    input.Size,
		NumObjs: input.NumObjs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create environment")
	}

	state := &sessionState{
		id:              o.idGen.Generate(),
		env:             env,
		seed:            seed,
		maxEpisodeSteps: input.MaxEpisodeSteps,
		createdAt:       o.clock.Now(),
	}

	o.mu.Lock()
	o.sessions[state.id] = state
	o.mu.Unlock()

	slog.Info("Session created",
		"session_id", state.id,
		"size", input.Size,
		"num_objs", input.NumObjs,
		"seed", seed,
	)

	return &CreateSessionOutput{Session: state.info()}, nil
}

// GetSession describes a live session
func (o *orchestrator) GetSession(_ context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.lockSession(input.SessionID)
	if err != nil {
		return nil, err
	}
	defer state.mu.Unlock()

	return &GetSessionOutput{Session: state.info()}, nil
}

// Reset starts a new episode
func (o *orchestrator) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.lockSession(input.SessionID)
	if err != nil {
		return nil, err
	}
	defer state.mu.Unlock()

	// an episode abandoned mid-way is still logged
	o.recordEpisode(ctx, state)

	out, err := state.env.Reset(ctx)
	if err != nil {
		slog.Error("Episode reset failed",
			"session_id", state.id,
			"error", err,
		)
		return nil, errors.Wrap(err, "failed to reset environment")
	}

	if !state.layoutSaved {
		if err := o.saveLayout(ctx, state); err != nil {
			state.env.Abort()
			slog.Error("Layout save failed, episode not started",
				"session_id", state.id,
				"error", err,
			)
			return nil, err
		}
	}

	state.episode++
	state.steps = 0
	state.totalReward = 0
	state.startedAt = o.clock.Now()
	state.lastEvent = ""
	state.recorded = false

	return &ResetOutput{
		SessionID:   state.id,
		Episode:     state.episode,
		Observation: out.Observation,
		Layout:      out.Layout,
		Generated:   out.Generated,
	}, nil
}

// Step applies one action to the running episode
func (o *orchestrator) Step(ctx context.Context, input *StepInput) (*StepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.lockSession(input.SessionID)
	if err != nil {
		return nil, err
	}
	defer state.mu.Unlock()

	result, err := state.env.Step(ctx, input.Action)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to step session %s", state.id)
	}

	state.steps++
	state.totalReward += result.Reward

	if event, ok := result.Event(); ok {
		state.lastEvent = event
		slog.Info("Object picked up",
			"session_id", state.id,
			"episode", state.episode,
			"event", event,
			"steps", state.steps,
		)
	}
	if result.Terminated || result.Truncated {
		o.recordEpisode(ctx, state)
	}

	return &StepOutput{
		SessionID: state.id,
		Episode:   state.episode,
		Steps:     state.steps,
		Result:    result,
	}, nil
}

// GetLayout returns the recorded layout
func (o *orchestrator) GetLayout(ctx context.Context, input *GetLayoutInput) (*GetLayoutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.layoutRepo.Get(ctx, &layouts.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get layout")
	}

	return &GetLayoutOutput{
		SessionID:  out.Record.SessionID,
		Size:       out.Record.Size,
		NumObjs:    out.Record.NumObjs,
		Seed:       out.Record.Seed,
		Layout:     out.Record.Layout,
		RecordedAt: out.Record.RecordedAt,
	}, nil
}

// GetOverview projects the recorded layout onto a hex grid room
func (o *orchestrator) GetOverview(ctx context.Context, input *GetOverviewInput) (*GetOverviewOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	layout, err := o.GetLayout(ctx, &GetLayoutInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	projected, err := o.overview.Project(&rpgtoolkit.ProjectInput{
		SessionID: layout.SessionID,
		Size:      layout.Size,
		Layout:    layout.Layout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to project layout")
	}
	if projected.Skipped > 0 {
		slog.Debug("Overview dropped entries",
			"session_id", layout.SessionID,
			"skipped", projected.Skipped,
		)
	}

	return &GetOverviewOutput{
		SessionID: layout.SessionID,
		Room:      projected.Room,
		Cells:     projected.Cells,
		Skipped:   projected.Skipped,
	}, nil
}

// ListEpisodes returns the finished episodes of a session. Episodes remain
// listable after the session is closed.
func (o *orchestrator) ListEpisodes(ctx context.Context, input *ListEpisodesInput) (*ListEpisodesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.episodeRepo.List(ctx, &episodes.ListInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list episodes")
	}

	return &ListEpisodesOutput{Episodes: out.Summaries}, nil
}

// CloseSession drops the instance and its layout record
func (o *orchestrator) CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.Lock()
	state, ok := o.sessions[input.SessionID]
	delete(o.sessions, input.SessionID)
	o.mu.Unlock()
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	state.closed = true

	o.recordEpisode(ctx, state)

	if _, err := o.layoutRepo.Delete(ctx, &layouts.DeleteInput{SessionID: state.id}); err != nil {
		return nil, errors.Wrap(err, "failed to delete layout")
	}

	slog.Info("Session closed",
		"session_id", state.id,
		"episodes", state.episode,
	)

	return &CloseSessionOutput{EpisodesPlayed: state.episode}, nil
}

// lockSession looks up a session and returns it locked
func (o *orchestrator) lockSession(sessionID string) (*sessionState, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.RLock()
	state, ok := o.sessions[sessionID]
	o.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}

	state.mu.Lock()
	if state.closed {
		state.mu.Unlock()
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}
	return state, nil
}

// saveLayout persists the recorded layout once. A record that already exists
// counts as saved.
func (o *orchestrator) saveLayout(ctx context.Context, state *sessionState) error {
	layout := state.env.Layout()
	if layout == nil {
		return errors.Internal("environment has no recorded layout after reset")
	}

	_, err := o.layoutRepo.Save(ctx, &layouts.SaveInput{
		SessionID: state.id,
		Size:      state.env.Size(),
		NumObjs:   state.env.NumObjs(),
		Seed:      state.seed,
		Layout:    layout,
	})
	if err != nil && !errors.IsAlreadyExists(err) {
		return errors.Wrap(err, "failed to save layout")
	}

	state.layoutSaved = true
	slog.Info("Layout recorded",
		"session_id", state.id,
		"entries", layout.Len(),
	)
	return nil
}

// recordEpisode appends the current episode to the log once. Episodes with
// no steps are not logged. Logging failures never fail the caller's call.
func (o *orchestrator) recordEpisode(ctx context.Context, state *sessionState) {
	if state.episode == 0 || state.recorded || state.steps == 0 {
		return
	}
	state.recorded = true

	sum := &episodes.Summary{
		SessionID:   state.id,
		Episode:     state.episode,
		Steps:       state.steps,
		TotalReward: state.totalReward,
		StartedAt:   state.startedAt,
		EndedAt:     o.clock.Now(),
	}
	switch state.env.State() {
	case pickup.StateTerminated:
		sum.Terminated = true
		sum.Event = state.lastEvent
	case pickup.StateTruncated:
		sum.Truncated = true
	}

	if _, err := o.episodeRepo.Record(ctx, &episodes.RecordInput{Summary: sum}); err != nil {
		slog.Warn("Failed to record episode",
			"session_id", state.id,
			"episode", state.episode,
			"error", err,
		)
	}
}

func (s *sessionState) info() *Info {
	return &Info{
		SessionID:       s.id,
		Size:            s.env.Size(),
		NumObjs:         s.env.NumObjs(),
		Seed:            s.seed,
		MaxEpisodeSteps: s.maxEpisodeSteps,
		State:           s.env.State(),
		Episode:         s.episode,
		Steps:           s.steps,
		CreatedAt:       s.createdAt,
	}
}
