package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"feedbackme/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps project stats in Redis hashes. A nil cache (no REDIS_URL) is a valid no-op.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache connects to redisURL, accepting either a redis:// URL or a bare host:port.
func NewStatsCache(ctx context.Context, redisURL, password string, ttl time.Duration) (*StatsCache, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &StatsCache{client: rdb, ttl: ttl}, nil
}

// generationTTL bounds how long an idle project's generation counter lives.
// An expired counter reads as 0, which only makes an in-flight fill skip its write.
const generationTTL = 24 * time.Hour

func statsKey(projectID int64) string {
	return fmt.Sprintf("stats:project:%d", projectID)
}

func generationKey(projectID int64) string {
	return fmt.Sprintf("stats:project:%d:gen", projectID)
}

// Get returns the cached stats, or nil when absent. The generation is returned either way;
// pass it to Set so a fill computed before an Invalidate is dropped.
func (c *StatsCache) Get(ctx context.Context, projectID int64) (*models.ProjectStats, int64, error) {
	if c == nil || c.client == nil {
		return nil, 0, nil
	}

	pipe := c.client.Pipeline()
	hash := pipe.HGetAll(ctx, statsKey(projectID))
	gen := pipe.Get(ctx, generationKey(projectID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	generation, err := gen.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	fields := hash.Val()
	if len(fields) == 0 {
		return nil, generation, nil
	}

	parse := func(name string) int64 {
		v, _ := strconv.ParseInt(fields[name], 10, 64)
		return v
	}
	return &models.ProjectStats{
		TotalFeedback:   parse("total_feedback"),
		TotalVotes:      parse("total_votes"),
		FeatureRequests: parse("feature_requests"),
		BugReports:      parse("bug_reports"),
		Improvements:    parse("improvements"),
		OpenItems:       parse("open_items"),
		InProgressItems: parse("in_progress_items"),
		ClosedItems:     parse("closed_items"),
	}, generation, nil
}

// Set stores the stats with the cache TTL, unless the project was invalidated after generation was read.
// A skipped write is not an error.
func (c *StatsCache) Set(ctx context.Context, projectID, generation int64, stats *models.ProjectStats) error {
	if c == nil || c.client == nil {
		return nil
	}

	key := statsKey(projectID)
	genKey := generationKey(projectID)
	fields := map[string]any{
		"total_feedback":    stats.TotalFeedback,
		"total_votes":       stats.TotalVotes,
		"feature_requests":  stats.FeatureRequests,
		"bug_reports":       stats.BugReports,
		"improvements":      stats.Improvements,
		"open_items":        stats.OpenItems,
		"in_progress_items": stats.InProgressItems,
		"closed_items":      stats.ClosedItems,
	}

	// WATCH makes EXEC fail if Invalidate bumps the generation between the check and the write
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleStats
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, errStaleStats) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

var errStaleStats = errors.New("stats computed before the last invalidation")

// Invalidate drops the cached stats of a project and bumps its generation.
func (c *StatsCache) Invalidate(ctx context.Context, projectID int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	genKey := generationKey(projectID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, statsKey(projectID))
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, generationTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Ping reports Redis health; a disabled cache is always healthy.
func (c *StatsCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *StatsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
