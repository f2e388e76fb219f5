package repository

import (
	"context"

	"github.com/pereval-service/internal/domain"
)

// ImagePayload - загруженный файл изображения
type ImagePayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaStorage - стратегия хранения содержимого изображений
type MediaStorage interface {
	// Store подготавливает запись изображения: либо сохраняет файл и
	// заполняет Path, либо кладёт содержимое в Data.
	Store(ctx context.Context, image *domain.Image, payload ImagePayload) error

	// Remove удаляет внешнее содержимое изображения, если оно есть
	Remove(ctx context.Context, image *domain.Image) error
}
