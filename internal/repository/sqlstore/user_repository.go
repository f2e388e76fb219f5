package sqlstore

import (
	"context"
	"fmt"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

type userRepository struct {
	db *DB
}

// NewUserRepository создает репозиторий пользователей
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, patronymic, phone`

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email); err != nil {
		return nil, fmt.Errorf("get user by email: %w", mapError(err))
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	id, err := r.db.insertReturningID(ctx,
		`INSERT INTO users (email, first_name, last_name, patronymic, phone)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		user.Email, user.FirstName, user.LastName, user.Patronymic, user.Phone,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", mapError(err))
	}
	user.ID = id
	return nil
}
