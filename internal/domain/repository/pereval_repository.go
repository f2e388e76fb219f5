package repository

import (
	"context"
	"errors"

	"github.com/pereval-service/internal/domain"
)

var (
	// ErrNotFound - запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrConflict - нарушено ограничение уникальности
	ErrConflict = errors.New("unique constraint violation")
	// ErrUnavailable - хранилище недоступно
	ErrUnavailable = errors.New("storage unavailable")
	// ErrNotEditable - запись уже вышла из статуса, в котором ее можно менять
	ErrNotEditable = errors.New("record is not editable")
)

// UserRepository определяет доступ к пользователям
type UserRepository interface {
	// GetByEmail возвращает пользователя по email или ErrNotFound
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create сохраняет пользователя и заполняет ID
	Create(ctx context.Context, user *domain.User) error
}

// AreaRepository определяет доступ к районам
type AreaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Area, error)

	// Find ищет район по паре (title, parent). parentID == nil означает корневой район.
	Find(ctx context.Context, title string, parentID *int64) (*domain.Area, error)

	Create(ctx context.Context, area *domain.Area) error
}

// PerevalRepository определяет доступ к перевалам. Методы чтения возвращают
// перевал вместе с пользователем и районом, но без уровня и изображений.
type PerevalRepository interface {
	Create(ctx context.Context, pereval *domain.Pereval) error

	GetByID(ctx context.Context, id int64) (*domain.Pereval, error)

	// ListByUserEmail возвращает перевалы пользователя, упорядоченные по ID
	ListByUserEmail(ctx context.Context, email string) ([]domain.Pereval, error)

	// Update перезаписывает названия, координаты и район перевала в статусе new.
	// Если перевал есть, но статус уже другой, возвращает ErrNotEditable.
	Update(ctx context.Context, pereval *domain.Pereval) error

	SetStatus(ctx context.Context, id int64, status domain.Status) error
}

// LevelRepository определяет доступ к уровням сложности (один на перевал)
type LevelRepository interface {
	Create(ctx context.Context, level *domain.Level) error

	// ListByPerevalIDs возвращает уровни для набора перевалов, ключ - ID перевала
	ListByPerevalIDs(ctx context.Context, perevalIDs []int64) (map[int64]*domain.Level, error)

	Update(ctx context.Context, level *domain.Level) error
}

// ImageRepository определяет доступ к изображениям
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error

	// ListByPerevalIDs возвращает метаданные изображений (без содержимого), ключ - ID перевала
	ListByPerevalIDs(ctx context.Context, perevalIDs []int64) (map[int64][]domain.Image, error)

	// GetContent возвращает изображение вместе с содержимым
	GetContent(ctx context.Context, id int64) (*domain.Image, error)

	// DeleteByPerevalID удаляет изображения перевала и возвращает удалённые записи
	DeleteByPerevalID(ctx context.Context, perevalID int64) ([]domain.Image, error)
}

// Transactor выполняет функцию в рамках одной транзакции. Репозитории,
// вызванные с переданным контекстом, работают внутри этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
