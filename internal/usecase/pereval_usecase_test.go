package usecase_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
	"github.com/pereval-service/internal/pkg/errors"
	"github.com/pereval-service/internal/usecase"
	"github.com/pereval-service/internal/usecase/dto"
)

type mocks struct {
	users    *MockUserRepository
	areas    *MockAreaRepository
	perevals *MockPerevalRepository
	levels   *MockLevelRepository
	images   *MockImageRepository
	cache    *MockCacheRepository
	storage  *MockMediaStorage
}

func newMockedUseCase(opts usecase.Options) (*usecase.PerevalUseCase, *mocks) {
	m := &mocks{
		users:    &MockUserRepository{},
		areas:    &MockAreaRepository{},
		perevals: &MockPerevalRepository{},
		levels:   &MockLevelRepository{},
		images:   &MockImageRepository{},
		cache:    &MockCacheRepository{},
		storage:  &MockMediaStorage{},
	}

	uc := usecase.NewPerevalUseCase(
		usecase.Repositories{
			Users:      m.users,
			Areas:      m.areas,
			Perevals:   m.perevals,
			Levels:     m.levels,
			Images:     m.images,
			Transactor: passthroughTx{},
		},
		m.storage,
		m.cache,
		opts,
		zap.NewNop(),
	)
	return uc, m
}

func ptr[T any](v T) *T { return &v }

func wrapped(err error) error {
	return fmt.Errorf("repo: %w", err)
}

func TestPerevalUseCase_ResolveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("empty email", func(t *testing.T) {
		uc, _ := newMockedUseCase(usecase.Options{})

		_, err := uc.ResolveUser(ctx, &dto.UserRequest{Email: "  "})
		assert.ErrorIs(t, err, errors.ErrEmailRequired)
	})

	t.Run("existing user returned unchanged", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		existing := &domain.User{ID: 7, Email: "a@b.c", FirstName: "Old", LastName: "Name"}
		m.users.On("GetByEmail", ctx, "a@b.c").Return(existing, nil)

		user, err := uc.ResolveUser(ctx, &dto.UserRequest{Email: "a@b.c", FirstName: "New", LastName: "Name"})

		require.NoError(t, err)
		assert.Same(t, existing, user)
		assert.Equal(t, "Old", user.FirstName)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates missing user", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.users.On("GetByEmail", ctx, "new@b.c").Return(nil, wrapped(repository.ErrNotFound))
		m.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@b.c" && u.FirstName == "A" && *u.Phone == "123"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 11
		}).Return(nil)

		user, err := uc.ResolveUser(ctx, &dto.UserRequest{Email: "new@b.c", FirstName: "A", LastName: "B", Phone: ptr("123")})

		require.NoError(t, err)
		assert.Equal(t, int64(11), user.ID)
		m.users.AssertExpectations(t)
	})

	t.Run("race on insert is a validation error", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.users.On("GetByEmail", ctx, "race@b.c").Return(nil, wrapped(repository.ErrNotFound))
		m.users.On("Create", ctx, mock.Anything).Return(wrapped(repository.ErrConflict))

		_, err := uc.ResolveUser(ctx, &dto.UserRequest{Email: "race@b.c", FirstName: "A", LastName: "B"})

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeValidation, appErr.Code)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.users.On("GetByEmail", ctx, "a@b.c").Return(nil, wrapped(repository.ErrUnavailable))

		_, err := uc.ResolveUser(ctx, &dto.UserRequest{Email: "a@b.c"})
		assert.ErrorIs(t, err, errors.ErrDatabaseUnavailable)
		assert.ErrorIs(t, err, repository.ErrUnavailable)
	})
}

func TestPerevalUseCase_ResolveArea(t *testing.T) {
	ctx := context.Background()

	t.Run("missing parent", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.areas.On("GetByID", ctx, int64(5)).Return(nil, wrapped(repository.ErrNotFound))

		_, err := uc.ResolveArea(ctx, &dto.AreaRequest{Title: "Child", ParentID: ptr(int64(5))})

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Район с parent_id 5 не найден", appErr.Message)
	})

	t.Run("found by title and parent", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		area := &domain.Area{ID: 3, Title: "Ridge"}
		m.areas.On("Find", ctx, "Ridge", (*int64)(nil)).Return(area, nil)

		got, err := uc.ResolveArea(ctx, &dto.AreaRequest{Title: "Ridge"})

		require.NoError(t, err)
		assert.Same(t, area, got)
		m.areas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("conflict on create", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.areas.On("Find", ctx, "Ridge", (*int64)(nil)).Return(nil, wrapped(repository.ErrNotFound))
		m.areas.On("Create", ctx, mock.Anything).Return(wrapped(repository.ErrConflict))

		_, err := uc.ResolveArea(ctx, &dto.AreaRequest{Title: "Ridge"})

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Ошибка при создании района Ridge", appErr.Message)
	})
}

func TestPerevalUseCase_CreatePereval_Duplicate(t *testing.T) {
	ctx := context.Background()
	uc, m := newMockedUseCase(usecase.Options{})
	m.perevals.On("Create", ctx, mock.MatchedBy(func(p *domain.Pereval) bool {
		return p.Status == domain.StatusNew && p.Title == "Pass1" && p.Coords.Height == 1000
	})).Return(wrapped(repository.ErrConflict))

	req := &dto.PerevalRequest{
		Title:  " Pass1 ",
		Coords: &dto.CoordsRequest{Latitude: ptr(45.0), Longitude: ptr(7.0), Height: ptr(1000)},
	}
	_, err := uc.CreatePereval(ctx, req, &domain.User{ID: 1}, &domain.Area{ID: 2})

	assert.ErrorIs(t, err, errors.ErrPerevalExists)
	m.perevals.AssertExpectations(t)
}

func TestPerevalUseCase_CreateLevel_Duplicate(t *testing.T) {
	ctx := context.Background()
	uc, m := newMockedUseCase(usecase.Options{})
	m.levels.On("Create", ctx, mock.Anything).Return(wrapped(repository.ErrConflict))

	_, err := uc.CreateLevel(ctx, &domain.Pereval{ID: 42}, &dto.LevelRequest{Summer: ptr("1А")})

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Уровень сложности для перевала 42 уже существует", appErr.Message)
}

func TestPerevalUseCase_AttachImages(t *testing.T) {
	ctx := context.Background()
	p := &domain.Pereval{ID: 9}

	t.Run("count mismatch", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})

		_, err := uc.AttachImages(ctx, p, []dto.ImageMeta{{}, {}}, []repository.ImagePayload{{}})

		assert.ErrorIs(t, err, errors.ErrImageCountMismatch)
		m.storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pairs metadata with payloads", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.storage.On("Store", ctx, mock.Anything, mock.Anything).Return(nil)
		m.images.On("Create", ctx, mock.Anything).Return(nil)

		created, err := uc.AttachImages(ctx, p,
			[]dto.ImageMeta{{Title: ptr("first")}, {Title: ptr("second")}},
			[]repository.ImagePayload{{Filename: "1.jpg"}, {Filename: "2.jpg"}},
		)

		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, "first", *created[0].Title)
		assert.Equal(t, "second", *created[1].Title)
		assert.Equal(t, int64(9), created[1].PerevalID)
		m.images.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.storage.On("Store", ctx, mock.Anything, mock.Anything).
			Return(errors.Validation("Недопустимый тип файла: text/plain"))

		_, err := uc.AttachImages(ctx, p, []dto.ImageMeta{{}}, []repository.ImagePayload{{}})

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Ошибка при создании изображения: Недопустимый тип файла: text/plain", appErr.Message)
	})

	t.Run("record failure removes stored file", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.storage.On("Store", ctx, mock.Anything, mock.Anything).Return(nil)
		m.storage.On("Remove", ctx, mock.Anything).Return(nil)
		m.images.On("Create", ctx, mock.Anything).Return(stderrors.New("disk full"))

		_, err := uc.AttachImages(ctx, p, []dto.ImageMeta{{}}, []repository.ImagePayload{{}})

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Ошибка при создании изображения: disk full", appErr.Message)
		m.storage.AssertCalled(t, "Remove", ctx, mock.Anything)
	})
}

func TestPerevalUseCase_Update_NotEditable(t *testing.T) {
	ctx := context.Background()

	for _, status := range []domain.Status{domain.StatusPending, domain.StatusAccepted, domain.StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			uc, m := newMockedUseCase(usecase.Options{Atomic: true})
			m.perevals.On("GetByID", ctx, int64(1)).Return(&domain.Pereval{ID: 1, Status: status}, nil)

			_, err := uc.Update(ctx, 1, &dto.UpdateRequest{
				Area:    &dto.AreaRequest{Title: "Ridge"},
				Pereval: &dto.PerevalRequest{Title: "Other"},
			}, nil)

			assert.ErrorIs(t, err, errors.ErrEditOnlyNew)
			m.perevals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestPerevalUseCase_Update_StatusChangedConcurrently(t *testing.T) {
	ctx := context.Background()
	uc, m := newMockedUseCase(usecase.Options{Atomic: true})
	m.perevals.On("GetByID", ctx, int64(1)).Return(&domain.Pereval{ID: 1, Status: domain.StatusNew}, nil)
	m.areas.On("Find", ctx, "Ridge", (*int64)(nil)).Return(&domain.Area{ID: 3, Title: "Ridge"}, nil)
	m.perevals.On("Update", ctx, mock.Anything).Return(wrapped(repository.ErrNotEditable))

	_, err := uc.Update(ctx, 1, &dto.UpdateRequest{
		Area:    &dto.AreaRequest{Title: "Ridge"},
		Pereval: &dto.PerevalRequest{Title: "Other"},
	}, nil)

	assert.ErrorIs(t, err, errors.ErrEditOnlyNew)
	m.levels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPerevalUseCase_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, m := newMockedUseCase(usecase.Options{})
	m.perevals.On("GetByID", ctx, int64(404)).Return(nil, wrapped(repository.ErrNotFound))

	_, err := uc.Update(ctx, 404, &dto.UpdateRequest{Pereval: &dto.PerevalRequest{Title: "x"}}, nil)

	assert.ErrorIs(t, err, errors.ErrPerevalNotFound)
}

func TestPerevalUseCase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		cached := &domain.Pereval{ID: 5, Title: "Cached"}
		m.cache.On("GetPereval", ctx, int64(5)).Return(cached, nil)

		p, err := uc.GetByID(ctx, 5)

		require.NoError(t, err)
		assert.Same(t, cached, p)
		m.perevals.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads relations and caches", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{CacheTTL: time.Minute})
		m.cache.On("GetPereval", ctx, int64(5)).Return(nil, nil)
		m.perevals.On("GetByID", ctx, int64(5)).Return(&domain.Pereval{ID: 5, Title: "Pass"}, nil)
		m.levels.On("ListByPerevalIDs", ctx, []int64{5}).
			Return(map[int64]*domain.Level{5: {ID: 1, PerevalID: 5, Summer: ptr("1А")}}, nil)
		m.images.On("ListByPerevalIDs", ctx, []int64{5}).
			Return(map[int64][]domain.Image{5: {{ID: 2, PerevalID: 5}}}, nil)
		m.cache.On("SetPereval", ctx, mock.Anything, time.Minute).Return(nil)

		p, err := uc.GetByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, "1А", *p.Level.Summer)
		assert.Len(t, p.Images, 1)
		m.cache.AssertExpectations(t)
	})

	t.Run("cache error falls back to storage", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.cache.On("GetPereval", ctx, int64(6)).Return(nil, stderrors.New("redis down"))
		m.perevals.On("GetByID", ctx, int64(6)).Return(nil, wrapped(repository.ErrNotFound))

		_, err := uc.GetByID(ctx, 6)
		assert.ErrorIs(t, err, errors.ErrPerevalNotFound)
	})
}

func TestPerevalUseCase_SetStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		current domain.Status
		next    domain.Status
		wantErr bool
	}{
		{"new to pending", domain.StatusNew, domain.StatusPending, false},
		{"pending to accepted", domain.StatusPending, domain.StatusAccepted, false},
		{"pending to rejected", domain.StatusPending, domain.StatusRejected, false},
		{"new to accepted", domain.StatusNew, domain.StatusAccepted, true},
		{"accepted to new", domain.StatusAccepted, domain.StatusNew, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newMockedUseCase(usecase.Options{Atomic: true})
			m.perevals.On("GetByID", ctx, int64(1)).Return(&domain.Pereval{ID: 1, Status: tt.current}, nil)
			m.perevals.On("SetStatus", ctx, int64(1), tt.next).Return(nil)
			m.cache.On("DeletePereval", ctx, int64(1)).Return(nil)

			err := uc.SetStatus(ctx, 1, tt.next)

			if tt.wantErr {
				appErr, ok := errors.As(err)
				require.True(t, ok)
				assert.Equal(t, errors.CodeValidation, appErr.Code)
				m.perevals.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			m.cache.AssertCalled(t, "DeletePereval", ctx, int64(1))
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		uc, _ := newMockedUseCase(usecase.Options{})
		assert.Error(t, uc.SetStatus(ctx, 1, domain.Status("archived")))
	})
}

func TestPerevalUseCase_ListByUserEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("email required", func(t *testing.T) {
		uc, _ := newMockedUseCase(usecase.Options{})
		_, err := uc.ListByUserEmail(ctx, "")
		assert.ErrorIs(t, err, errors.ErrEmailRequired)
	})

	t.Run("batch loads relations", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.perevals.On("ListByUserEmail", ctx, "a@b.c").
			Return([]domain.Pereval{{ID: 1}, {ID: 2}}, nil)
		m.levels.On("ListByPerevalIDs", ctx, []int64{1, 2}).
			Return(map[int64]*domain.Level{2: {PerevalID: 2}}, nil)
		m.images.On("ListByPerevalIDs", ctx, []int64{1, 2}).
			Return(map[int64][]domain.Image{1: {{ID: 10}, {ID: 11}}}, nil)

		list, err := uc.ListByUserEmail(ctx, "a@b.c")

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Nil(t, list[0].Level)
		assert.Len(t, list[0].Images, 2)
		assert.NotNil(t, list[1].Level)
		assert.Empty(t, list[1].Images)
		m.levels.AssertNumberOfCalls(t, "ListByPerevalIDs", 1)
	})

	t.Run("storage error", func(t *testing.T) {
		uc, m := newMockedUseCase(usecase.Options{})
		m.perevals.On("ListByUserEmail", ctx, "a@b.c").Return(nil, stderrors.New("syntax error"))

		_, err := uc.ListByUserEmail(ctx, "a@b.c")

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeInternal, appErr.Code)
	})
}

func TestPerevalUseCase_GetImageContent(t *testing.T) {
	ctx := context.Background()
	uc, m := newMockedUseCase(usecase.Options{})

	m.images.On("GetContent", ctx, int64(1)).
		Return(&domain.Image{ID: 1, Data: []byte{1}, ContentType: "image/png"}, nil)
	m.images.On("GetContent", ctx, int64(2)).
		Return(&domain.Image{ID: 2, Path: ptr("images/x.png")}, nil)
	m.images.On("GetContent", ctx, int64(3)).Return(nil, wrapped(repository.ErrNotFound))

	img, err := uc.GetImageContent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	_, err = uc.GetImageContent(ctx, 2)
	assert.ErrorIs(t, err, errors.ErrImageNotFound)

	_, err = uc.GetImageContent(ctx, 3)
	assert.ErrorIs(t, err, errors.ErrImageNotFound)
}
