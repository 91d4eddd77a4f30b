package usage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "pixelgate:usage:"
	bucketTTL = 48 * time.Hour
	scanBatch = 200
)

// RedisCounter shares usage between gateway instances
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// parses a redis URL, verifies the connection and returns the client
func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func redisKey(key Key) string {
	return keyPrefix + key.Day + ":" + key.CallerID
}

// INCR is atomic on the server, so concurrent callers always observe distinct counts
func (s *RedisCounter) IncrementAndCheck(ctx context.Context, key Key, ceiling int64) (int64, bool, error) {
	k := redisKey(key)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, bucketTTL)
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment usage: %w", err)
	}

	count := incr.Val()
	return count, ceiling <= 0 || count <= ceiling, nil
}

func (s *RedisCounter) Snapshot(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0)

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()

		count, err := s.client.Get(ctx, k).Int64()
		if errors.Is(err, redis.Nil) {
			continue // expired between SCAN and GET
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read usage %s: %w", k, err)
		}

		day, caller, ok := strings.Cut(strings.TrimPrefix(k, keyPrefix), ":")
		if !ok {
			continue
		}

		entries = append(entries, Entry{Day: day, CallerID: caller, Count: count})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan usage: %w", err)
	}

	sortEntries(entries)
	return entries, nil
}
