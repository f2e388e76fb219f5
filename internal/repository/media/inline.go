package media

import (
	"context"

	"go.uber.org/zap"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

// InlineStorage хранит содержимое изображения в самой записи БД
type InlineStorage struct {
	logger *zap.Logger
}

func NewInlineStorage(logger *zap.Logger) *InlineStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineStorage{logger: logger}
}

func (s *InlineStorage) Store(ctx context.Context, image *domain.Image, payload repository.ImagePayload) error {
	mtype, err := DetectContentType(payload.Data)
	if err != nil {
		return err
	}

	image.Path = nil
	image.Data = payload.Data
	image.ContentType = mtype.String()
	return nil
}

// Remove - содержимое удаляется вместе с записью
func (s *InlineStorage) Remove(ctx context.Context, image *domain.Image) error {
	return nil
}
