package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sharedredis "starmap-server/internal/shared/redis"
	"starmap-server/internal/world"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 24 * time.Hour

// snapshotCache keeps serialized world snapshots in Redis so campaign
// worlds survive process restarts without a Postgres round trip. A nil
// client disables the cache; every method degrades to a miss.
type snapshotCache struct {
	client *sharedredis.Client
	logger *slog.Logger
}

func newSnapshotCache(client *sharedredis.Client, logger *slog.Logger) *snapshotCache {
	return &snapshotCache{
		client: client,
		logger: logger.With("component", "snapshot_cache"),
	}
}

func snapshotKey(campaignID int) string {
	return fmt.Sprintf("campaign:%d:world", campaignID)
}

func (c *snapshotCache) Get(ctx context.Context, campaignID int) (*world.Snapshot, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, snapshotKey(campaignID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Snapshot cache read failed", "campaign_id", campaignID, "error", err)
		return nil, false
	}

	var snap world.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("Snapshot cache entry corrupt, dropping", "campaign_id", campaignID, "error", err)
		c.client.Del(ctx, snapshotKey(campaignID))
		return nil, false
	}
	return &snap, true
}

func (c *snapshotCache) Set(ctx context.Context, campaignID int, snap *world.Snapshot) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("Failed to encode snapshot for cache", "campaign_id", campaignID, "error", err)
		return
	}
	if err := c.client.Set(ctx, snapshotKey(campaignID), data, snapshotTTL).Err(); err != nil {
		c.logger.Warn("Snapshot cache write failed", "campaign_id", campaignID, "error", err)
	}
}

func (c *snapshotCache) Delete(ctx context.Context, campaignID int) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey(campaignID)).Err(); err != nil {
		c.logger.Warn("Snapshot cache delete failed", "campaign_id", campaignID, "error", err)
	}
}
