package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hall-booking-service/internal/domain"
)

// cachedHallRepository is a read-through cache over hall lookups. Hall
// ownership never changes, so cached entries cannot go stale in a way that
// affects authorization; the TTL only bounds memory.
type cachedHallRepository struct {
	inner  HallRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedHallRepository decorates a HallRepository with a Redis cache.
// A nil client or non-positive TTL disables caching.
func NewCachedHallRepository(inner HallRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) HallRepository {
	if client == nil || ttl <= 0 {
		return inner
	}
	return &cachedHallRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	return r.inner.Create(ctx, hall)
}

func (r *cachedHallRepository) GetByID(ctx context.Context, id int64) (*domain.Hall, error) {
	key := hallCacheKey(id)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var hall domain.Hall
		if err := json.Unmarshal(raw, &hall); err == nil {
			return &hall, nil
		}
		r.logger.Warn("corrupt hall cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		r.logger.Warn("hall cache read failed", zap.Error(err))
	}

	hall, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(hall); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("hall cache write failed", zap.Error(err))
		}
	}
	return hall, nil
}

func (r *cachedHallRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hall, error) {
	return r.inner.ListByOwner(ctx, ownerID)
}

func hallCacheKey(id int64) string {
	return fmt.Sprintf("hall:%d", id)
}
