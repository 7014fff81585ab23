package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshot is a rendered CSV tagged with the record-set version it was built for.
type Snapshot struct {
	Version int64
	Count   int
	Data    []byte
}

// Snapshots stores the latest CSV snapshot and the record-set version.
type Snapshots interface {
	Version(ctx context.Context) (int64, error)
	Bump(ctx context.Context) (int64, error)
	Get(ctx context.Context) (Snapshot, bool, error)
	Put(ctx context.Context, snap Snapshot) error
}

// RedisSnapshots keeps snapshots in a redis hash next to an INCR counter.
type RedisSnapshots struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSnapshots builds a snapshot store. Snapshots expire after ttl so a
// missed version bump cannot pin stale data forever.
func NewRedisSnapshots(client *redis.Client, prefix string, ttl time.Duration) *RedisSnapshots {
	if prefix == "" {
		prefix = "uepex:export:csv"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisSnapshots{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisSnapshots) versionKey() string  { return r.prefix + ":version" }
func (r *RedisSnapshots) snapshotKey() string { return r.prefix + ":snapshot" }

// Version returns the current record-set version; 0 when never bumped.
func (r *RedisSnapshots) Version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, r.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Bump marks the record set as changed.
func (r *RedisSnapshots) Bump(ctx context.Context) (int64, error) {
	return r.client.Incr(ctx, r.versionKey()).Result()
}

// Get loads the stored snapshot, if any.
func (r *RedisSnapshots) Get(ctx context.Context) (Snapshot, bool, error) {
	fields, err := r.client.HGetAll(ctx, r.snapshotKey()).Result()
	if err != nil {
		return Snapshot{}, false, err
	}
	if len(fields) == 0 {
		return Snapshot{}, false, nil
	}
	version, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot version: %w", err)
	}
	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot count: %w", err)
	}
	return Snapshot{Version: version, Count: count, Data: []byte(fields["data"])}, true, nil
}

// Put replaces the stored snapshot.
func (r *RedisSnapshots) Put(ctx context.Context, snap Snapshot) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.snapshotKey(), map[string]any{
		"version": snap.Version,
		"count":   snap.Count,
		"data":    snap.Data,
	})
	pipe.Expire(ctx, r.snapshotKey(), r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}
