package application

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ourwallet/ourwallet/pkg/helpers"
)

// DashboardCache keeps rendered dashboard payloads in Redis for a short TTL.
// Each user carries a version counter that is part of the cache key; record
// mutations bump the owner's counter, which invalidates every cached owner
// set containing that user without any key scanning.
type DashboardCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &DashboardCache{RDB: rdb, TTL: ttl}
}

func versionKey(userID string) string { return "dash:ver:" + userID }

// Bump invalidates cached dashboards that include userID. Safe on a nil
// cache; redis errors are ignored (the cache is best-effort).
func (c *DashboardCache) Bump(userID string) {
	if c == nil {
		return
	}
	_ = c.RDB.Incr(context.Background(), versionKey(userID)).Err()
}

func (c *DashboardCache) key(ctx context.Context, ownerIDs []string) (string, error) {
	sorted := append([]string(nil), ownerIDs...)
	sort.Strings(sorted)

	keys := make([]string, len(sorted))
	for i, id := range sorted {
		keys[i] = versionKey(id)
	}
	vals, err := c.RDB.MGet(ctx, keys...).Result()
	if err != nil {
		return "", err
	}
	var vsum int64
	for _, v := range vals {
		if s, ok := v.(string); ok {
			n, _ := strconv.ParseInt(s, 10, 64)
			vsum += n
		}
	}
	return "dash:" + strings.Join(sorted, ",") + ":v" + strconv.FormatInt(vsum, 10), nil
}

// Get loads a cached dashboard for the owner set, if present.
func (c *DashboardCache) Get(ctx context.Context, ownerIDs []string, dest *Dashboard) bool {
	if c == nil {
		return false
	}
	key, err := c.key(ctx, ownerIDs)
	if err != nil {
		return false
	}
	ok, err := helpers.RedisGetJSON(ctx, c.RDB, key, dest)
	return err == nil && ok
}

// Set stores a dashboard for the owner set.
func (c *DashboardCache) Set(ctx context.Context, ownerIDs []string, d *Dashboard) {
	if c == nil {
		return
	}
	key, err := c.key(ctx, ownerIDs)
	if err != nil {
		return
	}
	_ = helpers.RedisSetJSON(ctx, c.RDB, key, d, c.TTL)
}
