package repository

import (
	"context"
	"time"

	"github.com/pereval-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetPereval получает перевал из кеша, nil при промахе
	GetPereval(ctx context.Context, id int64) (*domain.Pereval, error)

	// SetPereval сохраняет перевал в кеше
	SetPereval(ctx context.Context, pereval *domain.Pereval, ttl time.Duration) error

	// DeletePereval инвалидирует перевал в кеше
	DeletePereval(ctx context.Context, id int64) error

	// Health проверяет доступность кеша
	Health(ctx context.Context) error
}
