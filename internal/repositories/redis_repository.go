package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/config"
)

// LoginAllowance is the outcome of counting one admin login attempt.
type LoginAllowance struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimitRepository interface {
	Allow(ctx context.Context, email string) (LoginAllowance, error)
	Reset(ctx context.Context, email string) error
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.Config
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	// Parse the Redis URL
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err), slog.String("url", redisURL))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	// Connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

func NewRateLimitRepo(client *redis.Client, cfg *config.Config) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg}
}

// Allow records one login attempt for email in a sliding window and reports
// whether it may proceed. Attempts are members of a sorted set scored by
// unix time.
func (r *redisRepository) Allow(ctx context.Context, email string) (LoginAllowance, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := loginAttemptsKey(email)
	window := r.cfg.RateConfig.WindowSize
	limit := r.cfg.RateConfig.MaxAttempts

	now := time.Now()
	windowStart := now.Add(-window).Unix()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	// the nanosecond member keeps same-second attempts distinct
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Rate limit pipeline failed", slog.String("key", key), slog.Any("error", err))
		return LoginAllowance{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts <= limit {
		logger.Debug("Rate limit check passed", slog.Int64("attempts", attempts))
		return LoginAllowance{Allowed: true, Remaining: int(limit - attempts)}, nil
	}

	// blocked until the oldest attempt leaves the window
	retryAfter := window
	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err == nil && len(oldest) > 0 {
		expires := time.Unix(int64(oldest[0].Score), 0).Add(window)
		retryAfter = max(expires.Sub(now).Round(time.Second), 0)
	} else if err != nil {
		logger.Warn("Oldest login attempt unreadable, using full window", slog.Any("error", err))
	}

	logger.Warn("Admin login rate limit exceeded", slog.Int64("attempts", attempts), slog.Duration("retryAfter", retryAfter))
	return LoginAllowance{RetryAfter: retryAfter}, nil
}

// Reset clears the attempt window after a successful login.
func (r *redisRepository) Reset(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}
