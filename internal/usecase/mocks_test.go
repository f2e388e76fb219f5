package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAreaRepository is a mock of AreaRepository
type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) Find(ctx context.Context, title string, parentID *int64) (*domain.Area, error) {
	args := m.Called(ctx, title, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) Create(ctx context.Context, area *domain.Area) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

// MockPerevalRepository is a mock of PerevalRepository
type MockPerevalRepository struct {
	mock.Mock
}

func (m *MockPerevalRepository) Create(ctx context.Context, p *domain.Pereval) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPerevalRepository) GetByID(ctx context.Context, id int64) (*domain.Pereval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pereval), args.Error(1)
}

func (m *MockPerevalRepository) ListByUserEmail(ctx context.Context, email string) ([]domain.Pereval, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pereval), args.Error(1)
}

func (m *MockPerevalRepository) Update(ctx context.Context, p *domain.Pereval) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPerevalRepository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockLevelRepository is a mock of LevelRepository
type MockLevelRepository struct {
	mock.Mock
}

func (m *MockLevelRepository) Create(ctx context.Context, level *domain.Level) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockLevelRepository) ListByPerevalIDs(ctx context.Context, ids []int64) (map[int64]*domain.Level, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.Level), args.Error(1)
}

func (m *MockLevelRepository) Update(ctx context.Context, level *domain.Level) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

// MockImageRepository is a mock of ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) ListByPerevalIDs(ctx context.Context, ids []int64) (map[int64][]domain.Image, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.Image), args.Error(1)
}

func (m *MockImageRepository) GetContent(ctx context.Context, id int64) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteByPerevalID(ctx context.Context, perevalID int64) ([]domain.Image, error) {
	args := m.Called(ctx, perevalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Image), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPereval(ctx context.Context, id int64) (*domain.Pereval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pereval), args.Error(1)
}

func (m *MockCacheRepository) SetPereval(ctx context.Context, p *domain.Pereval, ttl time.Duration) error {
	args := m.Called(ctx, p, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeletePereval(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCacheRepository) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMediaStorage is a mock of MediaStorage
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) Store(ctx context.Context, image *domain.Image, payload repository.ImagePayload) error {
	args := m.Called(ctx, image, payload)
	return args.Error(0)
}

func (m *MockMediaStorage) Remove(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

// passthroughTx выполняет функцию без транзакции
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
