package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

type levelRepository struct {
	db *DB
}

// NewLevelRepository создает репозиторий уровней сложности
func NewLevelRepository(db *DB) repository.LevelRepository {
	return &levelRepository{db: db}
}

const levelColumns = `id, pereval_id, winter, summer, autumn, spring`

func (r *levelRepository) Create(ctx context.Context, level *domain.Level) error {
	id, err := r.db.insertReturningID(ctx,
		`INSERT INTO levels (pereval_id, winter, summer, autumn, spring)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		level.PerevalID, level.Winter, level.Summer, level.Autumn, level.Spring,
	)
	if err != nil {
		return fmt.Errorf("create level: %w", mapError(err))
	}
	level.ID = id
	return nil
}

func (r *levelRepository) ListByPerevalIDs(ctx context.Context, perevalIDs []int64) (map[int64]*domain.Level, error) {
	result := make(map[int64]*domain.Level, len(perevalIDs))
	if len(perevalIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT `+levelColumns+` FROM levels WHERE pereval_id IN (?)`, perevalIDs)
	if err != nil {
		return nil, fmt.Errorf("build levels query: %w", err)
	}

	var levels []domain.Level
	if err := r.db.selectAll(ctx, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("list levels: %w", mapError(err))
	}

	for i := range levels {
		result[levels[i].PerevalID] = &levels[i]
	}
	return result, nil
}

func (r *levelRepository) Update(ctx context.Context, level *domain.Level) error {
	res, err := r.db.exec(ctx,
		`UPDATE levels SET winter = ?, summer = ?, autumn = ?, spring = ? WHERE pereval_id = ?`,
		level.Winter, level.Summer, level.Autumn, level.Spring, level.PerevalID,
	)
	if err != nil {
		return fmt.Errorf("update level for pereval %d: %w", level.PerevalID, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("update level for pereval %d: %w", level.PerevalID, err)
	}
	return nil
}
