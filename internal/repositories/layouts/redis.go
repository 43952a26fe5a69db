package layouts

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-mapgen/internal/redis"
)

const (
	mapKeyPrefix   = "map:"
	ownerKeyPrefix = "map:owner:"
)

// RedisConfig configures the redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the config
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis-backed map repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  clk,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Map == nil {
		return nil, errors.InvalidArgument(errMapNil)
	}
	m := input.Map
	if m.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	ttl, live := ttlFor(m, r.clock.Now())
	if !live {
		return nil, errors.InvalidArgument(errMapExpired)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal map")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, mapKeyPrefix+m.ID, data, ttl)
	// The owner index has no TTL; expired members are dropped when listed
	if m.OwnerID != "" {
		pipe.SAdd(ctx, ownerKeyPrefix+m.OwnerID, m.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save map")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	result, err := r.client.Get(ctx, mapKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("map with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get map")
	}

	var m layout.Map
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal map")
	}

	return &GetOutput{Map: &m}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input *ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	ownerKey := ownerKeyPrefix + input.OwnerID
	ids, err := r.client.SMembers(ctx, ownerKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list maps for owner %s", input.OwnerID)
	}
	if len(ids) == 0 {
		return &ListByOwnerOutput{Maps: []*layout.Map{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = mapKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load maps for owner %s", input.OwnerID)
	}

	maps := make([]*layout.Map, 0, len(values))
	var stale []interface{}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}

		var m layout.Map
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal map %s", ids[i])
		}
		maps = append(maps, &m)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, ownerKey, stale...).Err(); err != nil {
			slog.Warn("Failed to drop expired maps from owner index",
				"owner_id", input.OwnerID,
				"count", len(stale),
				"error", err,
			)
		}
	}

	sortMaps(maps)

	return &ListByOwnerOutput{Maps: maps}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	existing, err := r.Get(ctx, &GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, mapKeyPrefix+input.ID)
	if existing.Map.OwnerID != "" {
		pipe.SRem(ctx, ownerKeyPrefix+existing.Map.OwnerID, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete map")
	}

	return &DeleteOutput{}, nil
}
