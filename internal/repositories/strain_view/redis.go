package strainview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/strain-screen/internal/redis"
)

const (
	// Key pattern: strain:view:{strain_id}
	viewKeyPrefix = "strain:view:"

	// KeyPattern matches every cached view, for SCAN
	KeyPattern = viewKeyPrefix + "*"

	// Error messages
	errStrainIDEmpty = "strain ID cannot be empty"
	errViewNil       = "view cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
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

// NewRedisRepository creates a Redis-backed strain view cache
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// viewData is what gets serialized to Redis
type viewData struct {
	View     *entities.StrainView `json:"view"`
	CachedAt time.Time            `json:"cached_at"`
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.StrainID == "" {
		return nil, errors.InvalidArgument(errStrainIDEmpty)
	}

	result, err := r.client.Get(ctx, GetKey(input.StrainID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("strain view %s not cached", input.StrainID)
		}
		return nil, errors.Wrapf(err, "failed to get strain view %s", input.StrainID)
	}

	out, err := Decode([]byte(result))
	if err != nil {
		// drop the entry so the next load repopulates it
		if delErr := r.client.Del(ctx, GetKey(input.StrainID)).Err(); delErr != nil {
			slog.WarnContext(ctx, "failed to drop corrupt strain view",
				"strain_id", input.StrainID,
				"error", delErr,
			)
		}
		return nil, errors.Wrapf(err, "failed to decode strain view %s", input.StrainID)
	}

	return out, nil
}

// Decode parses a stored view. An entry without a view or without an ID is
// reported as errors.DataLoss.
func Decode(raw []byte) (*GetOutput, error) {
	var data viewData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed strain view")
	}
	if data.View == nil || data.View.ID == "" {
		return nil, errors.DataLoss("strain view entry has no view")
	}

	return &GetOutput{
		View:     data.View,
		CachedAt: data.CachedAt,
	}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.View == nil {
		return nil, errors.InvalidArgument(errViewNil)
	}
	if input.View.ID == "" {
		return nil, errors.InvalidArgument(errStrainIDEmpty)
	}
	if input.TTL <= 0 {
		return nil, errors.InvalidArgumentf("ttl must be positive, got %s", input.TTL)
	}

	now := r.clock.Now()
	jsonData, err := json.Marshal(viewData{
		View:     input.View,
		CachedAt: now,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal strain view %s", input.View.ID)
	}

	if err := r.client.Set(ctx, GetKey(input.View.ID), jsonData, input.TTL).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache strain view %s", input.View.ID)
	}

	return &PutOutput{
		CachedAt:  now,
		ExpiresAt: now.Add(input.TTL),
	}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.StrainID == "" {
		return nil, errors.InvalidArgument(errStrainIDEmpty)
	}

	deleted, err := r.client.Del(ctx, GetKey(input.StrainID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete strain view %s", input.StrainID)
	}

	return &DeleteOutput{Deleted: deleted > 0}, nil
}

// GetKey returns the Redis key for a strain view
// Exposed for testing purposes
func GetKey(strainID string) string {
	return fmt.Sprintf("%s%s", viewKeyPrefix, strainID)
}
