package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/safenest/trustpipe/pkg/config"
)

const (
	contextWindowKeyPattern = "conversation:%s:window"
	suspensionKeyPattern    = "suspension:%s"

	contextWindowTTL = 24 * time.Hour
)

// Cache holds the pipeline's two pieces of redis state: trailing
// conversation windows for the semantic classifier and a short-lived
// suspension gate so every surface's pre-write check avoids a database read.
type Cache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	client := redis.NewClient(options)

	return &Cache{client: client}, nil
}

// NewCacheWithClient wraps an existing client; tests use it with redismock.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

// PushContextMessage prepends a message to the conversation window and trims
// it to size.
func (c *Cache) PushContextMessage(ctx context.Context, conversationID, text string, windowSize int) error {
	key := fmt.Sprintf(contextWindowKeyPattern, conversationID)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, text)
	pipe.LTrim(ctx, key, 0, int64(windowSize)-1)
	pipe.Expire(ctx, key, contextWindowTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push context message: %w", err)
	}
	return nil
}

// GetContextWindow returns the last messages of a conversation, oldest
// first, ready to hand to the classifier.
func (c *Cache) GetContextWindow(ctx context.Context, conversationID string, windowSize int) ([]string, error) {
	key := fmt.Sprintf(contextWindowKeyPattern, conversationID)
	items, err := c.client.LRange(ctx, key, 0, int64(windowSize)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read context window: %w", err)
	}
	// stored newest-first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// SetSuspension caches a suspension until it expires; the TTL is the
// remaining suspension time so the cache can never outlive the gate.
func (c *Cache) SetSuspension(ctx context.Context, userID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf(suspensionKeyPattern, userID)
	return c.client.Set(ctx, key, until.UTC().Format(time.RFC3339), ttl).Err()
}

// GetSuspension returns the cached suspension expiry, if any.
func (c *Cache) GetSuspension(ctx context.Context, userID string) (*time.Time, error) {
	key := fmt.Sprintf(suspensionKeyPattern, userID)
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read suspension gate: %w", err)
	}
	until, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("malformed suspension gate value: %w", err)
	}
	return &until, nil
}

// ClearSuspension drops the gate entry after an administrative lift.
func (c *Cache) ClearSuspension(ctx context.Context, userID string) error {
	key := fmt.Sprintf(suspensionKeyPattern, userID)
	return c.client.Del(ctx, key).Err()
}
