package episodes

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]*Summary
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]*Summary),
	}
}

// Record appends an episode summary
func (r *InMemoryRepository) Record(_ context.Context, input *RecordInput) (*RecordOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sum := input.Summary
	for _, existing := range r.store[sum.SessionID] {
		if existing.Episode == sum.Episode {
			return nil, errors.AlreadyExistsf("episode %d of session %s already recorded", sum.Episode, sum.SessionID)
		}
	}

	cp := *sum
	r.store[sum.SessionID] = append(r.store[sum.SessionID], &cp)
	return &RecordOutput{}, nil
}

// List returns a session's episodes
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if err := validateList(input); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.store[input.SessionID]
	out := make([]*Summary, 0, len(stored))
	for _, sum := range stored {
		cp := *sum
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Episode < out[j].Episode })

	if input.Limit > 0 && len(out) > input.Limit {
		out = out[:input.Limit]
	}
	return &ListOutput{Summaries: out}, nil
}
