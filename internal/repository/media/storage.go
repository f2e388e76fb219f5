package media

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/config"
	"github.com/pereval-service/internal/domain/repository"
	"github.com/pereval-service/internal/pkg/errors"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// NewStorage выбирает стратегию хранения по конфигурации
func NewStorage(cfg *config.MediaConfig, logger *zap.Logger) (repository.MediaStorage, error) {
	switch cfg.Storage {
	case config.MediaStorageFilesystem:
		return NewFilesystemStorage(cfg.Root, logger), nil
	case config.MediaStorageInline:
		return NewInlineStorage(logger), nil
	default:
		return nil, fmt.Errorf("unsupported media storage %q", cfg.Storage)
	}
}

// DetectContentType определяет тип содержимого по сигнатуре и проверяет,
// что это изображение допустимого формата
func DetectContentType(data []byte) (*mimetype.MIME, error) {
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return nil, errors.Validationf("Недопустимый тип файла: %s", mtype.String())
	}
	return mtype, nil
}
