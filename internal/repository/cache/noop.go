package cache

import (
	"context"
	"time"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

// noopCache используется, когда Redis отключен: всегда промах
type noopCache struct{}

func NewNoopCache() repository.CacheRepository {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) GetPereval(context.Context, int64) (*domain.Pereval, error) { return nil, nil }

func (noopCache) SetPereval(context.Context, *domain.Pereval, time.Duration) error { return nil }

func (noopCache) DeletePereval(context.Context, int64) error { return nil }

func (noopCache) Health(context.Context) error { return nil }
