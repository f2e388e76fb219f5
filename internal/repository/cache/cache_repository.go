package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

const perevalKeyPrefix = "pereval:"

// PerevalKey - ключ карточки перевала в кеше
func PerevalKey(id int64) string {
	return fmt.Sprintf("%s%d", perevalKeyPrefix, id)
}

type cacheRepository struct {
	redis  *Redis
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		redis:  redis,
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetPereval получает перевал из кеша
func (r *cacheRepository) GetPereval(ctx context.Context, id int64) (*domain.Pereval, error) {
	data, err := r.Get(ctx, PerevalKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var p domain.Pereval
	if err := json.Unmarshal(data, &p); err != nil {
		r.logger.Error("Failed to unmarshal pereval from cache", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal pereval: %w", err)
	}

	return &p, nil
}

// SetPereval сохраняет перевал в кеше
func (r *cacheRepository) SetPereval(ctx context.Context, p *domain.Pereval, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		r.logger.Error("Failed to marshal pereval", zap.Int64("id", p.ID), zap.Error(err))
		return fmt.Errorf("marshal pereval: %w", err)
	}

	return r.Set(ctx, PerevalKey(p.ID), data, ttl)
}

func (r *cacheRepository) DeletePereval(ctx context.Context, id int64) error {
	return r.Delete(ctx, PerevalKey(id))
}

func (r *cacheRepository) Health(ctx context.Context) error {
	return r.redis.Health(ctx)
}
