package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const likeCountTTL = 5 * time.Minute

// Cache is a best-effort redis cache. A nil *Cache (or an unreachable
// server) behaves as a permanent miss, so callers never depend on it.
type Cache struct {
	client *redis.Client
}

var ctx = context.Background()

// New connects to the cache server. Connection failure is logged and
// tolerated.
func New(host, port string) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warnf("could not connect to cache at %s:%s: %v", host, port, err)
	}

	return &Cache{client: client}
}

func likeCountKey(imageID uint) string {
	return "image:likes:" + strconv.FormatUint(uint64(imageID), 10)
}

// GetLikeCount returns the cached like count for an image and whether it was
// present.
func (c *Cache) GetLikeCount(imageID uint) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, likeCountKey(imageID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetLikeCount stores the like count for an image with a short TTL.
func (c *Cache) SetLikeCount(imageID uint, count int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, likeCountKey(imageID), count, likeCountTTL).Err(); err != nil {
		log.Warnf("cache set failed for image %d: %v", imageID, err)
	}
}

// InvalidateLikeCount drops the cached like count for an image.
func (c *Cache) InvalidateLikeCount(imageID uint) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, likeCountKey(imageID)).Err(); err != nil {
		log.Warnf("cache delete failed for image %d: %v", imageID, err)
	}
}

// Close releases the client connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
