package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finhealth/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when no report is cached under the fingerprint
var ErrMiss = errors.New("report not cached")

const keyPrefix = "finhealth:report:"

// ReportCache stores computed reports in Redis keyed by input fingerprint
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a report cache; a non-positive ttl keeps entries until evicted
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func key(fingerprint string) string {
	return keyPrefix + fingerprint
}

// Get loads the report cached under fingerprint
func (c *ReportCache) Get(ctx context.Context, fingerprint string) (*models.Report, error) {
	raw, err := c.client.Get(ctx, key(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// Set caches the report under fingerprint
func (c *ReportCache) Set(ctx context.Context, fingerprint string, report *models.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key(fingerprint), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *ReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
