package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vidora/vidora/internal/domain/model"
)

// ProfileCache keeps rendered channel profiles with a short TTL. A key
// exists per (handle, viewer) pair because the is_subscribed flag is
// viewer-specific; invalidation sweeps all viewers of a handle.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func channelKey(handle string, viewer uuid.UUID) string {
	return "channel:" + handle + ":" + viewer.String()
}

func (c *ProfileCache) GetChannel(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, bool, error) {
	raw, err := c.client.Get(ctx, channelKey(handle, viewer)).Bytes()
	switch {
	case err == redis.Nil:
		return model.ChannelProfile{}, false, nil
	case err != nil:
		return model.ChannelProfile{}, false, err
	}

	var profile model.ChannelProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// corrupt entry, treat as a miss
		return model.ChannelProfile{}, false, nil
	}
	return profile, true, nil
}

func (c *ProfileCache) SetChannel(ctx context.Context, handle string, viewer uuid.UUID, profile model.ChannelProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, channelKey(handle, viewer), raw, c.ttl).Err()
}

// InvalidateChannel drops every cached view of the handle. SCAN keeps the
// sweep incremental; entries expire on their own anyway, so a partial
// sweep only delays convergence by the TTL.
func (c *ProfileCache) InvalidateChannel(ctx context.Context, handle string) error {
	iter := c.client.Scan(ctx, 0, "channel:"+handle+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
