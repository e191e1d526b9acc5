package layouts

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pickupworld/internal/redis"
)

// Key pattern: layout:{session_id}
const layoutKeyPrefix = "layout:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for layouts
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the layout with SETNX so the first recording wins
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	record := &Record{
		SessionID:  input.SessionID,
		Size:       input.Size,
		NumObjs:    input.NumObjs,
		Seed:       input.Seed,
		Layout:     input.Layout.Clone(),
		RecordedAt: r.clock.Now(),
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	created, err := r.client.SetNX(ctx, buildKey(input.SessionID), recordJSON, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store layout in Redis")
	}
	if !created {
		return nil, errors.AlreadyExistsf("layout for session %s already recorded", input.SessionID)
	}

	return &SaveOutput{Record: record}, nil
}

// Get retrieves a layout by session ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	recordJSON, err := r.client.Get(ctx, buildKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("layout for session %s not found", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get layout from Redis")
	}

	var record Record
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal layout")
	}

	return &GetOutput{Record: &record}, nil
}

// Delete removes a layout
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	n, err := r.client.Del(ctx, buildKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete layout from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", layoutKeyPrefix, sessionID)
}
