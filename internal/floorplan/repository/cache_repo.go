package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
)

const generationKeyPrefix = "floorplan:gen:" // floorplan:gen:{scope}:{request}

// ErrCacheMiss is returned when no generation result is cached for a request.
var ErrCacheMiss = errors.New("generation cache miss")

// GenerationCache stores engine results in Redis. Generation is deterministic
// for a given engine configuration, so keys carry the engine's cache scope and
// differently configured engines never share entries.
type GenerationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGenerationCache(client *redis.Client, ttl time.Duration) *GenerationCache {
	return &GenerationCache{client: client, ttl: ttl}
}

func (c *GenerationCache) Get(ctx context.Context, scope string, req domain.GenerationRequest) (*engine.Result, error) {
	data, err := c.client.Get(ctx, GenerationKey(scope, req)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached layout: %w", err)
	}

	var res engine.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached layout: %w", err)
	}
	return &res, nil
}

func (c *GenerationCache) Set(ctx context.Context, scope string, req domain.GenerationRequest, res engine.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := c.client.Set(ctx, GenerationKey(scope, req), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache layout: %w", err)
	}
	return nil
}

func (c *GenerationCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GenerationKey renders a request into a stable cache key.
func GenerationKey(scope string, req domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(generationKeyPrefix)
	b.WriteString(scope)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(req.Width, 'g', -1, 64))
	b.WriteByte('x')
	b.WriteString(strconv.FormatFloat(req.Height, 'g', -1, 64))
	fmt.Fprintf(&b, ":m%d:b%d:c%d:k%d", req.MasterRooms, req.UnattachedBathrooms, req.Cars, req.Bikes)
	return b.String()
}
