// internal/questions/catalog.go
package questions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"question-service/internal/common/logger"
)

const catalogCacheKey = "catalog:topics"

// Catalog answers whether a topic label is recognized. Criteria validation
// consults it before any store query is issued.
type Catalog interface {
	IsRecognized(ctx context.Context, topic string) (bool, error)
}

// TopicLister is the slice of the store the catalog needs.
type TopicLister interface {
	ListTopics(ctx context.Context) ([]string, error)
}

// CachedCatalog serves the recognized-topic set from Redis, falling back to
// the database when the cache is cold or unavailable. Cache failures are
// logged and absorbed; only a database failure surfaces to the caller.
type CachedCatalog struct {
	store  TopicLister
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedCatalog(store TopicLister, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedCatalog {
	return &CachedCatalog{
		store:  store,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "topic-catalog"}),
	}
}

func (c *CachedCatalog) IsRecognized(ctx context.Context, topic string) (bool, error) {
	topics, err := c.topics(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range topics {
		if t == topic {
			return true, nil
		}
	}
	return false, nil
}

func (c *CachedCatalog) topics(ctx context.Context) ([]string, error) {
	if val, err := c.redis.Get(ctx, catalogCacheKey).Result(); err == nil {
		var topics []string
		if err := json.Unmarshal([]byte(val), &topics); err == nil {
			return topics, nil
		}
	} else if err != redis.Nil {
		c.logger.WithError(err).Warn("topic cache read failed, falling back to database", nil)
	}

	topics, err := c.store.ListTopics(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(topics); err == nil {
		if err := c.redis.Set(ctx, catalogCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.WithError(err).Warn("topic cache write failed", nil)
		}
	}

	return topics, nil
}

// StaticCatalog recognizes a fixed topic list. Used in tests and available
// for deployments that pin the label set in config.
type StaticCatalog []string

func (s StaticCatalog) IsRecognized(_ context.Context, topic string) (bool, error) {
	for _, t := range s {
		if t == topic {
			return true, nil
		}
	}
	return false, nil
}
