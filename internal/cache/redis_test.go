package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodKey(t *testing.T) {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "kvreport:invoices:2025-08-01:2025-08-31", periodKey(from, to))
}

func TestNewRedisDefaultTTL(t *testing.T) {
	r := NewRedis("localhost:6379", 0)
	assert.Equal(t, time.Hour, r.ttl)

	r = NewRedis("localhost:6379", 5*time.Minute)
	assert.Equal(t, 5*time.Minute, r.ttl)
}
