package session

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"

	"github.com/KirkDiggler/pickupworld/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/environments/pickup"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
)

// CreateSessionInput defines the request for creating an environment session.
// A zero Seed draws one from the clock; a zero MaxEpisodeSteps uses the
// engine default.
type CreateSessionInput struct {
	Size            float64
	NumObjs         int
	Seed            int64
	MaxEpisodeSteps int
}

// CreateSessionOutput defines the response for creating a session
type CreateSessionOutput struct {
	Session *Info
}

// Info describes a live session
type Info struct {
	SessionID       string
	Size            float64
	NumObjs         int
	Seed            int64
	MaxEpisodeSteps int
	State           pickup.State
	Episode         int
	Steps           int
	CreatedAt       time.Time
}

// GetSessionInput defines the request for describing a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the response for describing a session
type GetSessionOutput struct {
	Session *Info
}

// ResetInput defines the request for starting a new episode
type ResetInput struct {
	SessionID string
}

// ResetOutput defines the response for starting a new episode
type ResetOutput struct {
	SessionID   string
	Episode     int
	Observation *entities.Observation
	Layout      *entities.Layout
	Generated   bool
}

// StepInput defines the request for one environment step
type StepInput struct {
	SessionID string
	Action    entities.Action
}

// StepOutput defines the response for one environment step
type StepOutput struct {
	SessionID string
	Episode   int
	Steps     int
	Result    *entities.StepResult
}

// GetLayoutInput defines the request for a session's recorded layout
type GetLayoutInput struct {
	SessionID string
}

// GetLayoutOutput defines the response for a session's recorded layout
type GetLayoutOutput struct {
	SessionID  string
	Size       float64
	NumObjs    int
	Seed       int64
	Layout     *entities.Layout
	RecordedAt time.Time
}

// GetOverviewInput defines the request for a tactical overview
type GetOverviewInput struct {
	SessionID string
}

// GetOverviewOutput defines the response for a tactical overview
type GetOverviewOutput struct {
	SessionID string
	Room      *spatial.RoomData
	Cells     []rpgtoolkit.Cell
	Skipped   int
}

// ListEpisodesInput defines the request for a session's episode log
type ListEpisodesInput struct {
	SessionID string
	Limit     int
}

// ListEpisodesOutput defines the response for a session's episode log
type ListEpisodesOutput struct {
	Episodes []*episodes.Summary
}

// CloseSessionInput defines the request for closing a session
type CloseSessionInput struct {
	SessionID string
}

// CloseSessionOutput defines the response for closing a session
type CloseSessionOutput struct {
	EpisodesPlayed int
}
