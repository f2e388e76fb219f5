package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

// FilesystemStorage сохраняет файлы в MEDIA_ROOT/images/YYYY/MM/DD/
type FilesystemStorage struct {
	root   string
	logger *zap.Logger
	now    func() time.Time
}

func NewFilesystemStorage(root string, logger *zap.Logger) *FilesystemStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilesystemStorage{root: root, logger: logger, now: time.Now}
}

func (s *FilesystemStorage) Store(ctx context.Context, image *domain.Image, payload repository.ImagePayload) error {
	mtype, err := DetectContentType(payload.Data)
	if err != nil {
		return err
	}

	ts := s.now()
	// Относительный путь со слэшами: он же хранится в БД и входит в URL
	rel := path.Join("images", ts.Format("2006"), ts.Format("01"), ts.Format("02"), uuid.NewString()+mtype.Extension())
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, payload.Data, 0o644); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}

	image.Path = &rel
	image.Data = nil
	image.ContentType = mtype.String()

	s.logger.Debug("Image stored",
		zap.String("path", rel),
		zap.String("filename", payload.Filename),
		zap.Int("size", len(payload.Data)),
	)
	return nil
}

func (s *FilesystemStorage) Remove(ctx context.Context, image *domain.Image) error {
	if image.IsInline() {
		return nil
	}

	full := filepath.Join(s.root, filepath.FromSlash(*image.Path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove media file", zap.String("path", full), zap.Error(err))
		return fmt.Errorf("remove media file: %w", err)
	}

	s.logger.Debug("Image removed", zap.String("path", *image.Path))
	return nil
}
