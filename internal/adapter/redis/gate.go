// Package redis implements the durable launch gate on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	gateKeyPrefix = "seed_imported:"
	gateDoneValue = "1"
	scanCount     = 100
)

// globEscaper quotes SCAN MATCH metacharacters so the key prefix is literal.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Gate stores one key per imported seed. Keys never expire.
type Gate struct {
	rdb    goredis.Cmdable
	prefix string
}

// NewGate creates a gate whose keys are "<prefix>seed_imported:<seed>".
func NewGate(rdb goredis.Cmdable, prefix string) *Gate {
	return &Gate{rdb: rdb, prefix: prefix}
}

// Key returns the Redis key of a seed's gate.
func (g *Gate) Key(seedName string) string {
	return g.prefix + gateKeyPrefix + seedName
}

// IsDone reports whether the seed has been imported.
func (g *Gate) IsDone(ctx context.Context, seedName string) (bool, error) {
	value, err := g.rdb.Get(ctx, g.Key(seedName)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get gate %q: %w", seedName, err)
	}
	return value == gateDoneValue, nil
}

// MarkDone records that the seed has been imported.
func (g *Gate) MarkDone(ctx context.Context, seedName string) error {
	if err := g.rdb.Set(ctx, g.Key(seedName), gateDoneValue, 0).Err(); err != nil {
		return fmt.Errorf("set gate %q: %w", seedName, err)
	}
	return nil
}

// ClearAll unsets every gate under the prefix, including gates of seeds
// that are no longer in the catalog.
func (g *Gate) ClearAll(ctx context.Context) (int, error) {
	match := globEscaper.Replace(g.prefix+gateKeyPrefix) + "*"

	var (
		cursor  uint64
		cleared int
	)
	for {
		keys, next, err := g.rdb.Scan(ctx, cursor, match, scanCount).Result()
		if err != nil {
			return cleared, fmt.Errorf("scan gates: %w", err)
		}
		if len(keys) > 0 {
			n, err := g.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return cleared, fmt.Errorf("clear gates: %w", err)
			}
			cleared += int(n)
		}
		if next == 0 {
			return cleared, nil
		}
		cursor = next
	}
}
