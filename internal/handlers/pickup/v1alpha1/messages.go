package v1alpha1

import "time"

// Pose is a resolved position and heading
type Pose struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Dir float64 `json:"dir"`
}

// LayoutEntry is one recorded placement
type LayoutEntry struct {
	Kind  string `json:"kind"`
	Color string `json:"color,omitempty"`
	Pose  Pose   `json:"pose"`
}

// EntityPlacement is an object visible in an observation
type EntityPlacement struct {
	EntityID string `json:"entity_id"`
	Mesh     string `json:"mesh"`
	Pose     Pose   `json:"pose"`
}

// Observation is the top-down state after a tick
type Observation struct {
	Agent     Pose              `json:"agent"`
	Carrying  string            `json:"carrying,omitempty"`
	Entities  []EntityPlacement `json:"entities"`
	StepCount int32             `json:"step_count"`
}

// SessionInfo describes a live session
type SessionInfo struct {
	SessionID       string    `json:"session_id"`
	Size            float64   `json:"size"`
	NumObjs         int32     `json:"num_objs"`
	Seed            int64     `json:"seed"`
	MaxEpisodeSteps int32     `json:"max_episode_steps"`
	State           string    `json:"state"`
	Episode         int32     `json:"episode"`
	Steps           int32     `json:"steps"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateSessionRequest creates an environment session
type CreateSessionRequest struct {
	Size            float64 `json:"size"`
	NumObjs         int32   `json:"num_objs"`
	Seed            int64   `json:"seed"`
	MaxEpisodeSteps int32   `json:"max_episode_steps"`
}

// CreateSessionResponse returns the new session
type CreateSessionResponse struct {
	Session *SessionInfo `json:"session"`
}

// GetSessionRequest describes a session
type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

// GetSessionResponse returns the session
type GetSessionResponse struct {
	Session *SessionInfo `json:"session"`
}

// ResetRequest starts a new episode
type ResetRequest struct {
	SessionID string `json:"session_id"`
}

// ResetResponse returns the initial observation of the episode
type ResetResponse struct {
	SessionID   string        `json:"session_id"`
	Episode     int32         `json:"episode"`
	Observation *Observation  `json:"observation"`
	Layout      []LayoutEntry `json:"layout"`
	Generated   bool          `json:"generated"`
}

// StepRequest applies one action. Action is an action name such as
// "move_forward".
type StepRequest struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
}

// StepResponse carries the step result. Event is set when the step ended the
// episode with a pickup.
type StepResponse struct {
	SessionID   string         `json:"session_id"`
	Episode     int32          `json:"episode"`
	Steps       int32          `json:"steps"`
	Observation *Observation   `json:"observation"`
	Reward      float64        `json:"reward"`
	Terminated  bool           `json:"terminated"`
	Truncated   bool           `json:"truncated"`
	Event       string         `json:"event,omitempty"`
	Info        map[string]any `json:"info,omitempty"`
}

// GetLayoutRequest fetches the recorded layout
type GetLayoutRequest struct {
	SessionID string `json:"session_id"`
}

// GetLayoutResponse returns the recorded layout
type GetLayoutResponse struct {
	SessionID  string        `json:"session_id"`
	Size       float64       `json:"size"`
	NumObjs    int32         `json:"num_objs"`
	Seed       int64         `json:"seed"`
	Layout     []LayoutEntry `json:"layout"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// GetOverviewRequest fetches the tactical overview
type GetOverviewRequest struct {
	SessionID string `json:"session_id"`
}

// OverviewCell is one entity on the overview grid
type OverviewCell struct {
	EntityID string `json:"entity_id"`
	Kind     string `json:"kind"`
	Color    string `json:"color,omitempty"`
	Col      int32  `json:"col"`
	Row      int32  `json:"row"`
}

// GetOverviewResponse returns the overview grid
type GetOverviewResponse struct {
	SessionID string         `json:"session_id"`
	GridType  string         `json:"grid_type"`
	Width     int32          `json:"width"`
	Height    int32          `json:"height"`
	Cells     []OverviewCell `json:"cells"`
	Skipped   int32          `json:"skipped"`
}

// ListEpisodesRequest lists finished episodes
type ListEpisodesRequest struct {
	SessionID string `json:"session_id"`
	Limit     int32  `json:"limit"`
}

// EpisodeSummary is one finished episode
type EpisodeSummary struct {
	Episode     int32     `json:"episode"`
	Steps       int32     `json:"steps"`
	TotalReward float64   `json:"total_reward"`
	Terminated  bool      `json:"terminated"`
	Truncated   bool      `json:"truncated"`
	Event       string    `json:"event,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
}

// ListEpisodesResponse returns finished episodes
type ListEpisodesResponse struct {
	SessionID string            `json:"session_id"`
	Episodes  []*EpisodeSummary `json:"episodes"`
}

// CloseSessionRequest closes a session
type CloseSessionRequest struct {
	SessionID string `json:"session_id"`
}

// CloseSessionResponse reports what the session did
type CloseSessionResponse struct {
	EpisodesPlayed int32 `json:"episodes_played"`
}
