// Package episodes keeps a log of finished episodes per session
package episodes

//go:generate mockgen -destination=mock/mock_repository.go -package=episodesmock github.com/KirkDiggler/pickupworld/internal/repositories/episodes Repository

import (
	"context"
	"time"
)

// Repository defines the storage interface for episode summaries
type Repository interface {
	// Record appends a finished episode; (session, episode) must be unique
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)

	// List returns a session's episodes ordered by episode number
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// Summary describes one finished episode
type Summary struct {
	SessionID   string    `json:"session_id"`
	Episode     int       `json:"episode"`
	Steps       int       `json:"steps"`
	TotalReward float64   `json:"total_reward"`
	Terminated  bool      `json:"terminated"`
	Truncated   bool      `json:"truncated"`
	Event       string    `json:"event,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
}

// RecordInput defines the request for recording an episode
type RecordInput struct {
	Summary *Summary
}

// RecordOutput defines the response for recording an episode
type RecordOutput struct{}

// ListInput defines the request for listing episodes. Limit <= 0 returns all.
type ListInput struct {
	SessionID string
	Limit     int
}

// ListOutput defines the response for listing episodes
type ListOutput struct {
	Summaries []*Summary
}
