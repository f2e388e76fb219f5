package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

type imageRepository struct {
	db *DB
}

// NewImageRepository создает репозиторий изображений
func NewImageRepository(db *DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

// imageMetaColumns - всё, кроме содержимого
const imageMetaColumns = `id, pereval_id, title, path, content_type, date_added`

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	dateAdded := now()

	id, err := r.db.insertReturningID(ctx,
		`INSERT INTO images (pereval_id, title, path, data, content_type, date_added)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		image.PerevalID, image.Title, image.Path, image.Data, image.ContentType, dateAdded,
	)
	if err != nil {
		return fmt.Errorf("create image: %w", mapError(err))
	}

	image.ID = id
	image.DateAdded = dateAdded
	return nil
}

func (r *imageRepository) ListByPerevalIDs(ctx context.Context, perevalIDs []int64) (map[int64][]domain.Image, error) {
	result := make(map[int64][]domain.Image, len(perevalIDs))
	if len(perevalIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+imageMetaColumns+` FROM images WHERE pereval_id IN (?) ORDER BY id`, perevalIDs)
	if err != nil {
		return nil, fmt.Errorf("build images query: %w", err)
	}

	var images []domain.Image
	if err := r.db.selectAll(ctx, &images, query, args...); err != nil {
		return nil, fmt.Errorf("list images: %w", mapError(err))
	}

	for _, img := range images {
		result[img.PerevalID] = append(result[img.PerevalID], img)
	}
	return result, nil
}

func (r *imageRepository) GetContent(ctx context.Context, id int64) (*domain.Image, error) {
	var img domain.Image
	if err := r.db.get(ctx, &img,
		`SELECT `+imageMetaColumns+`, data FROM images WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get image %d: %w", id, mapError(err))
	}
	return &img, nil
}

func (r *imageRepository) DeleteByPerevalID(ctx context.Context, perevalID int64) ([]domain.Image, error) {
	var images []domain.Image
	if err := r.db.selectAll(ctx, &images,
		`SELECT `+imageMetaColumns+` FROM images WHERE pereval_id = ? ORDER BY id`, perevalID); err != nil {
		return nil, fmt.Errorf("list images for delete: %w", mapError(err))
	}

	if _, err := r.db.exec(ctx, `DELETE FROM images WHERE pereval_id = ?`, perevalID); err != nil {
		return nil, fmt.Errorf("delete images of pereval %d: %w", perevalID, mapError(err))
	}
	return images, nil
}
