package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FollowSetPrefix is the key prefix for per-user follow-set caches.
	FollowSetPrefix = "follows:user:"

	// FollowSetTTL bounds staleness if an invalidation is ever lost.
	FollowSetTTL = time.Hour
)

// FollowSet caches the set of user IDs a user follows. It is a read-through
// layer in front of the follows table: misses and errors fall back to the
// repository, and follow/unfollow invalidates the owner's entry.
type FollowSet interface {
	// Get returns the cached followee IDs. found=false means a cache miss.
	Get(ctx context.Context, userID int64) (ids []int64, found bool, err error)

	// Set stores the followee IDs. Empty sets are not cached; a redis SET
	// cannot hold zero members, and the underlying query is cheap anyway.
	Set(ctx context.Context, userID int64, ids []int64) error

	// Invalidate drops the entry after a follow or unfollow.
	Invalidate(ctx context.Context, userID int64) error
}

// RedisFollowSet implements FollowSet using Redis Sets.
type RedisFollowSet struct {
	client *redis.Client
}

// NewFollowSet creates a FollowSet backed by Redis.
func NewFollowSet(client *redis.Client) FollowSet {
	return &RedisFollowSet{client: client}
}

func followKey(userID int64) string {
	return fmt.Sprintf("%s%d", FollowSetPrefix, userID)
}

func (c *RedisFollowSet) Get(ctx context.Context, userID int64) ([]int64, bool, error) {
	members, err := c.client.SMembers(ctx, followKey(userID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("smembers: %w", err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt follow-set member %q: %w", m, err)
		}
		ids = append(ids, id)
	}

	return ids, true, nil
}

// Set stores the ids with a pipeline: SADD + EXPIRE.
func (c *RedisFollowSet) Set(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	key := followKey(userID)
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = strconv.FormatInt(id, 10)
	}

	pipe := c.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, FollowSetTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("sadd pipeline: %w", err)
	}

	return nil
}

func (c *RedisFollowSet) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, followKey(userID)).Err(); err != nil {
		return fmt.Errorf("del follow set: %w", err)
	}
	return nil
}
