package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"kvreport/internal/kiotviet"
)

const (
	keyPrefix  = "kvreport:invoices:"
	defaultTTL = time.Hour
)

// Redis caches full-period invoice fetches as JSON blobs keyed by date
// range. A cache miss is never an error: the caller just hits the API.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects a cache to the given address. Pass a zero ttl to use
// the one-hour default.
func NewRedis(addr string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies the connection, used at startup to fail fast on a bad
// REDIS_ADDR while leaving the cache optional.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetInvoices returns the cached invoice set for a period, if present.
func (r *Redis) GetInvoices(ctx context.Context, from, to time.Time) ([]kiotviet.Invoice, bool) {
	data, err := r.client.Get(ctx, periodKey(from, to)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: failed to read %s: %v", periodKey(from, to), err)
		return nil, false
	}

	var invoices []kiotviet.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		log.Printf("cache: corrupt entry %s: %v", periodKey(from, to), err)
		return nil, false
	}
	return invoices, true
}

// SaveInvoices stores a complete period fetch with TTL. Write failures are
// logged and swallowed; caching is best-effort.
func (r *Redis) SaveInvoices(ctx context.Context, from, to time.Time, invoices []kiotviet.Invoice) {
	data, err := json.Marshal(invoices)
	if err != nil {
		log.Printf("cache: failed to marshal invoices: %v", err)
		return
	}
	if err := r.client.Set(ctx, periodKey(from, to), data, r.ttl).Err(); err != nil {
		log.Printf("cache: failed to write %s: %v", periodKey(from, to), err)
	}
}

func periodKey(from, to time.Time) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
