// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	accountentity "account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/feature/audit/usecase"
	"account_backend/internal/shared/pagination"
)

// CachingEventRepository decorates an EventRepository with a Redis
// read-through cache for single events. Events are immutable once written,
// so cached entries are never invalidated and simply age out after ttl.
// Listings and counts always go to the underlying repository.
//
// Only the event columns and the owner's username and email are cached.
// Those never change after registration, while the rest of the user row
// (status, enabled flag, attempt counter) does.
type CachingEventRepository struct {
	inner     usecase.EventRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingEventRepository implements EventRepository.
var _ usecase.EventRepository = (*CachingEventRepository)(nil)

// NewCachingEventRepository decorates an EventRepository with Redis caching.
// If ttl is 0, it defaults to 1 hour. If namespace is empty, it uses "events".
// A nil rdb disables caching.
func NewCachingEventRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EventRepository, namespace string) *CachingEventRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "events"
	}
	return &CachingEventRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create writes through to the underlying repository.
func (c *CachingEventRepository) Create(ctx context.Context, event *entity.UserEvent) error {
	return c.inner.Create(ctx, event)
}

// FindByID checks the cache first, then falls back to the database.
func (c *CachingEventRepository) FindByID(ctx context.Context, id uint) (*entity.UserEvent, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cached cachedEvent
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached.event(), nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(newCachedEvent(out)); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// List delegates to the underlying repository.
func (c *CachingEventRepository) List(ctx context.Context, filter usecase.EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
	return c.inner.List(ctx, filter, p)
}

// Count delegates to the underlying repository.
func (c *CachingEventRepository) Count(ctx context.Context, filter usecase.EventFilter) (int64, error) {
	return c.inner.Count(ctx, filter)
}

// cachedEvent is the Redis payload of an event.
type cachedEvent struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"userId"`
	EventType entity.EventType `json:"eventType"`
	EventTime time.Time        `json:"eventTime"`
	Username  string           `json:"username,omitempty"`
	Email     string           `json:"email,omitempty"`
}

func newCachedEvent(e *entity.UserEvent) cachedEvent {
	out := cachedEvent{
		ID:        e.ID,
		UserID:    e.UserID,
		EventType: e.EventType,
		EventTime: e.EventTime,
	}
	if e.User != nil {
		out.Username = e.User.Username
		out.Email = e.User.Email
	}
	return out
}

func (c cachedEvent) event() *entity.UserEvent {
	e := &entity.UserEvent{
		ID:        c.ID,
		UserID:    c.UserID,
		EventType: c.EventType,
		EventTime: c.EventTime,
	}
	if c.Username != "" || c.Email != "" {
		e.User = &accountentity.User{ID: c.UserID, Username: c.Username, Email: c.Email}
	}
	return e
}

// cacheKey generates the cache key of an event.
func (c *CachingEventRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
