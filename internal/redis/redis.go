package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

var Rdb *redis.Client

// Resolved timelines are cheap to rebuild, so cache entries stay short-lived
// and every schedule write invalidates the affected nodes anyway.
const timelineTTL = 5 * time.Minute

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func timelineKey(nodeID int, from, to time.Time) string {
	return fmt.Sprintf("timeline:%d:%d:%d", nodeID, from.Unix(), to.Unix())
}

// GetTimeline returns the cached timeline for the node and window, or
// (nil, false) on a miss. Cache errors degrade to a miss.
func GetTimeline(ctx context.Context, nodeID int, from, to time.Time) ([]model.TimelineEntry, bool) {
	if Rdb == nil {
		return nil, false
	}
	raw, err := Rdb.Get(ctx, timelineKey(nodeID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("timeline cache read failed")
		return nil, false
	}
	var entries []model.TimelineEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("timeline cache entry corrupt")
		return nil, false
	}
	return entries, true
}

// SetTimeline stores a resolved timeline. Failures are logged and swallowed;
// the cache is best-effort.
func SetTimeline(ctx context.Context, nodeID int, from, to time.Time, entries []model.TimelineEntry) {
	if Rdb == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("timeline cache marshal failed")
		return
	}
	if err := Rdb.Set(ctx, timelineKey(nodeID, from, to), raw, timelineTTL).Err(); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("timeline cache write failed")
	}
}

// InvalidateNode drops every cached timeline window for the node. Called
// after any write that can change the node's effective schedule.
func InvalidateNode(ctx context.Context, nodeID int) {
	if Rdb == nil {
		return
	}
	pattern := fmt.Sprintf("timeline:%d:*", nodeID)
	iter := Rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := Rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Error().Err(err).Str("key", iter.Val()).Msg("timeline cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("timeline cache scan failed")
	}
}
