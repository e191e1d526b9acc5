// Package layouts stores the layout record of each environment session. A
// record is written once, after the session's first reset, and never
// replaced.
package layouts

//go:generate mockgen -destination=mock/mock_repository.go -package=layoutsmock github.com/KirkDiggler/pickupworld/internal/repositories/layouts Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/pickupworld/internal/entities"
)

// Repository defines the storage interface for layout records
type Repository interface {
	// Save stores a layout; a second save for the same session fails with
	// AlreadyExists
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves the layout for a session
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes the layout for a session
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// Record is the persisted form of a layout
type Record struct {
	SessionID  string           `json:"session_id"`
	Size       float64          `json:"size"`
	NumObjs    int              `json:"num_objs"`
	Seed       int64            `json:"seed"`
	Layout     *entities.Layout `json:"layout"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// SaveInput defines the request for saving a layout
type SaveInput struct {
	SessionID string
	Size      float64
	NumObjs   int
	Seed      int64
	Layout    *entities.Layout
}

// SaveOutput defines the response for saving a layout
type SaveOutput struct {
	Record *Record
}

// GetInput defines the request for retrieving a layout
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for retrieving a layout
type GetOutput struct {
	Record *Record
}

// DeleteInput defines the request for deleting a layout
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for deleting a layout
type DeleteOutput struct {
	Deleted bool
}
