// Package rediscache implements the advice cache on Redis sorted sets.
//
// Each (owner, label) bucket is one sorted set scored by creation time in
// Unix milliseconds. Members are JSON rows carrying a unique id, so storing
// the same text twice appends a second row instead of bumping the first.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/moodjournal/mood-api/internal/domain"
)

const keyPrefix = "advice:"

// AdviceCache is an append-only advice log backed by Redis.
type AdviceCache struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewAdviceCache creates a Redis-backed advice cache.
func NewAdviceCache(client redis.Cmdable) *AdviceCache {
	return &AdviceCache{client: client, now: time.Now}
}

// NewClient parses a redis:// URL into a client.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func bucketKey(ownerID string, label domain.RangeLabel) string {
	return keyPrefix + ownerID + ":" + string(label)
}

// Lookup returns the newest suggestion in the bucket created at or after since.
func (c *AdviceCache) Lookup(ctx context.Context, ownerID string, label domain.RangeLabel, since time.Time) (string, bool, error) {
	members, err := c.client.ZRevRangeByScore(ctx, bucketKey(ownerID, label), &redis.ZRangeBy{
		Min:   strconv.FormatInt(since.UnixMilli(), 10),
		Max:   "+inf",
		Count: 1,
	}).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(members) == 0) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup advice: %w", err)
	}

	var row domain.CachedAdvice
	if err := json.Unmarshal([]byte(members[0]), &row); err != nil {
		return "", false, fmt.Errorf("decode cached advice: %w", err)
	}
	return row.Advice, true, nil
}

// Store appends a new row stamped with the current time.
func (c *AdviceCache) Store(ctx context.Context, ownerID string, label domain.RangeLabel, advice string) error {
	row := domain.CachedAdvice{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		RangeLabel: label,
		Advice:     advice,
		CreatedAt:  c.now().UTC(),
	}
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode cached advice: %w", err)
	}
	err = c.client.ZAdd(ctx, bucketKey(ownerID, label), redis.Z{
		Score:  float64(row.CreatedAt.UnixMilli()),
		Member: string(data),
	}).Err()
	if err != nil {
		return fmt.Errorf("store advice: %w", err)
	}
	return nil
}
