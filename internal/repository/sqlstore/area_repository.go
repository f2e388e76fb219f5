package sqlstore

import (
	"context"
	"fmt"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

type areaRepository struct {
	db *DB
}

// NewAreaRepository создает репозиторий районов
func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	var a domain.Area
	if err := r.db.get(ctx, &a, `SELECT id, title, parent_id FROM areas WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get area %d: %w", id, mapError(err))
	}
	return &a, nil
}

func (r *areaRepository) Find(ctx context.Context, title string, parentID *int64) (*domain.Area, error) {
	var (
		a   domain.Area
		err error
	)
	if parentID == nil {
		err = r.db.get(ctx, &a,
			`SELECT id, title, parent_id FROM areas WHERE title = ? AND parent_id IS NULL`, title)
	} else {
		err = r.db.get(ctx, &a,
			`SELECT id, title, parent_id FROM areas WHERE title = ? AND parent_id = ?`, title, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("find area %q: %w", title, mapError(err))
	}
	return &a, nil
}

func (r *areaRepository) Create(ctx context.Context, area *domain.Area) error {
	id, err := r.db.insertReturningID(ctx,
		`INSERT INTO areas (title, parent_id) VALUES (?, ?) RETURNING id`,
		area.Title, area.ParentID,
	)
	if err != nil {
		return fmt.Errorf("create area: %w", mapError(err))
	}
	area.ID = id
	return nil
}
