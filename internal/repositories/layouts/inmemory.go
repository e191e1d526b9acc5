package layouts

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Record
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]*Record),
	}
}

// Save stores a layout once per session
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.SessionID]; exists {
		return nil, errors.AlreadyExistsf("layout for session %s already recorded", input.SessionID)
	}

	record := &Record{
		SessionID:  input.SessionID,
		Size:       input.Size,
		NumObjs:    input.NumObjs,
		Seed:       input.Seed,
		Layout:     input.Layout.Clone(),
		RecordedAt: r.clock.Now(),
	}
	r.store[input.SessionID] = record

	return &SaveOutput{Record: copyRecord(record)}, nil
}

// Get retrieves a layout by session ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.store[input.SessionID]
	if !exists {
		return nil, errors.NotFoundf("layout for session %s not found", input.SessionID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Record: copyRecord(record)}, nil
}

// Delete removes a layout
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.SessionID]
	delete(r.store, input.SessionID)

	return &DeleteOutput{Deleted: exists}, nil
}

func copyRecord(r *Record) *Record {
	cp := *r
	cp.Layout = r.Layout.Clone()
	return &cp
}
