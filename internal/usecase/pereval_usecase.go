package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pereval-service/internal/config"
	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
	"github.com/pereval-service/internal/pkg/errors"
	"github.com/pereval-service/internal/pkg/validator"
	"github.com/pereval-service/internal/usecase/dto"
)

// Repositories - набор хранилищ, с которыми работает PerevalUseCase
type Repositories struct {
	Users      repository.UserRepository
	Areas      repository.AreaRepository
	Perevals   repository.PerevalRepository
	Levels     repository.LevelRepository
	Images     repository.ImageRepository
	Transactor repository.Transactor
}

// Options - настройки сценария отправки
type Options struct {
	// Atomic - выполнять отправку и редактирование в одной транзакции
	Atomic bool
	// ImageUpdateMode - append или replace для изображений при редактировании
	ImageUpdateMode string
	CacheTTL        time.Duration
}

// PerevalUseCase реализует сценарии отправки, редактирования и чтения перевалов
type PerevalUseCase struct {
	repos   Repositories
	storage repository.MediaStorage
	cache   repository.CacheRepository
	opts    Options
	logger  *zap.Logger
}

// NewPerevalUseCase создает новый экземпляр PerevalUseCase
func NewPerevalUseCase(
	repos Repositories,
	storage repository.MediaStorage,
	cache repository.CacheRepository,
	opts Options,
	logger *zap.Logger,
) *PerevalUseCase {
	if opts.ImageUpdateMode == "" {
		opts.ImageUpdateMode = config.ImageUpdateAppend
	}
	return &PerevalUseCase{
		repos:   repos,
		storage: storage,
		cache:   cache,
		opts:    opts,
		logger:  logger,
	}
}

// ResolveUser возвращает пользователя по email или создает нового.
// Существующая запись не изменяется.
func (uc *PerevalUseCase) ResolveUser(ctx context.Context, req *dto.UserRequest) (*domain.User, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return nil, errors.ErrEmailRequired
	}

	user, err := uc.repos.Users.GetByEmail(ctx, req.Email)
	if err == nil {
		return user, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, uc.storageError(err)
	}

	user = &domain.User{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Phone:      req.Phone,
	}
	if err := uc.repos.Users.Create(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errors.Validationf("Ошибка при создании пользователя %s", req.Email).Wrap(err)
		}
		return nil, uc.storageError(err)
	}

	uc.logger.Debug("User created", zap.Int64("user_id", user.ID))
	return user, nil
}

// ResolveArea возвращает район по паре (title, parent) или создает новый
func (uc *PerevalUseCase) ResolveArea(ctx context.Context, req *dto.AreaRequest) (*domain.Area, error) {
	if req == nil {
		return nil, validator.CheckAreaTitle("")
	}

	if req.ParentID != nil {
		if _, err := uc.repos.Areas.GetByID(ctx, *req.ParentID); err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return nil, errParentNotFound(*req.ParentID)
			}
			return nil, uc.storageError(err)
		}
	}

	area, err := uc.repos.Areas.Find(ctx, req.Title, req.ParentID)
	if err == nil {
		return area, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, uc.storageError(err)
	}

	area = &domain.Area{Title: req.Title, ParentID: req.ParentID}
	if err := uc.repos.Areas.Create(ctx, area); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrConflict):
			return nil, errors.Validationf("Ошибка при создании района %s", req.Title).Wrap(err)
		case stderrors.Is(err, repository.ErrNotFound) && req.ParentID != nil:
			// родитель удален между проверкой и вставкой
			return nil, errParentNotFound(*req.ParentID)
		}
		return nil, uc.storageError(err)
	}

	uc.logger.Debug("Area created", zap.Int64("area_id", area.ID), zap.String("title", area.Title))
	return area, nil
}

// CreatePereval создает перевал со статусом new
func (uc *PerevalUseCase) CreatePereval(ctx context.Context, req *dto.PerevalRequest, user *domain.User, area *domain.Area) (*domain.Pereval, error) {
	p := &domain.Pereval{
		UserID: user.ID,
		AreaID: area.ID,
		Status: domain.StatusNew,
		User:   user,
		Area:   area,
	}
	applyPerevalFields(p, req)

	if err := uc.repos.Perevals.Create(ctx, p); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errors.ErrPerevalExists.Wrap(err)
		}
		return nil, uc.storageError(err)
	}

	return p, nil
}

// CreateLevel создает уровень сложности; у перевала он может быть только один
func (uc *PerevalUseCase) CreateLevel(ctx context.Context, p *domain.Pereval, req *dto.LevelRequest) (*domain.Level, error) {
	level := &domain.Level{PerevalID: p.ID}
	applyLevelFields(level, req)

	if err := uc.repos.Levels.Create(ctx, level); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errors.Validationf("Уровень сложности для перевала %d уже существует", p.ID).Wrap(err)
		}
		return nil, uc.storageError(err)
	}

	return level, nil
}

// AttachImages сохраняет изображения, сопоставляя описания и файлы по позиции.
// Возвращает созданные записи, в том числе при ошибке на одном из файлов.
func (uc *PerevalUseCase) AttachImages(
	ctx context.Context,
	p *domain.Pereval,
	metas []dto.ImageMeta,
	payloads []repository.ImagePayload,
) ([]domain.Image, error) {
	if err := validator.CheckImageCount(len(metas), len(payloads)); err != nil {
		return nil, err
	}

	created := make([]domain.Image, 0, len(payloads))
	for i := range payloads {
		img := domain.Image{PerevalID: p.ID, Title: metas[i].Title}

		if err := uc.storage.Store(ctx, &img, payloads[i]); err != nil {
			return created, imageError(err)
		}

		if err := uc.repos.Images.Create(ctx, &img); err != nil {
			if rmErr := uc.storage.Remove(ctx, &img); rmErr != nil {
				uc.logger.Warn("Failed to remove orphaned image", zap.Error(rmErr))
			}
			if stderrors.Is(err, repository.ErrUnavailable) {
				return created, uc.storageError(err)
			}
			return created, imageError(err)
		}

		img.Data = nil
		created = append(created, img)
	}

	return created, nil
}

// Submit выполняет полную отправку: пользователь, район, перевал, уровень, изображения
func (uc *PerevalUseCase) Submit(ctx context.Context, req *dto.SubmitRequest, payloads []repository.ImagePayload) (*domain.Pereval, error) {
	if req == nil || req.Pereval == nil {
		return nil, validator.CheckTitle("")
	}

	var (
		result *domain.Pereval
		stored []domain.Image
	)

	err := uc.run(ctx, func(ctx context.Context) error {
		stored = nil

		user, err := uc.ResolveUser(ctx, req.User)
		if err != nil {
			return err
		}

		area, err := uc.ResolveArea(ctx, req.Area)
		if err != nil {
			return err
		}

		p, err := uc.CreatePereval(ctx, req.Pereval, user, area)
		if err != nil {
			return err
		}

		if p.Level, err = uc.CreateLevel(ctx, p, req.Pereval.Level); err != nil {
			return err
		}

		if len(req.Pereval.Images) > 0 && len(payloads) > 0 {
			stored, err = uc.AttachImages(ctx, p, req.Pereval.Images, payloads)
			if err != nil {
				return err
			}
		}
		p.Images = stored

		result = p
		return nil
	})
	if err != nil {
		// без транзакции записи изображений остаются, файлы тоже
		if uc.opts.Atomic {
			uc.discardFiles(ctx, stored)
		}
		uc.logger.Warn("Submit failed", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Pereval submitted",
		zap.Int64("pereval_id", result.ID),
		zap.Int64("user_id", result.UserID),
		zap.Int("images", len(result.Images)),
	)
	return result, nil
}

// Update перезаписывает перевал, пока он в статусе new
func (uc *PerevalUseCase) Update(ctx context.Context, id int64, req *dto.UpdateRequest, payloads []repository.ImagePayload) (*domain.Pereval, error) {
	if req == nil || req.Pereval == nil {
		return nil, validator.CheckTitle("")
	}

	var (
		result   *domain.Pereval
		stored   []domain.Image
		replaced []domain.Image
	)

	err := uc.run(ctx, func(ctx context.Context) error {
		stored, replaced = nil, nil

		p, err := uc.repos.Perevals.GetByID(ctx, id)
		if err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return errors.ErrPerevalNotFound
			}
			return uc.storageError(err)
		}
		if !p.IsEditable() {
			return errors.ErrEditOnlyNew
		}

		area, err := uc.ResolveArea(ctx, req.Area)
		if err != nil {
			return err
		}

		applyPerevalFields(p, req.Pereval)
		p.AreaID = area.ID
		p.Area = area

		if err := uc.repos.Perevals.Update(ctx, p); err != nil {
			switch {
			case stderrors.Is(err, repository.ErrConflict):
				return errors.ErrPerevalExists.Wrap(err)
			case stderrors.Is(err, repository.ErrNotFound):
				return errors.ErrPerevalNotFound
			case stderrors.Is(err, repository.ErrNotEditable):
				return errors.ErrEditOnlyNew
			}
			return uc.storageError(err)
		}

		if p.Level, err = uc.upsertLevel(ctx, p, req.Pereval.Level); err != nil {
			return err
		}

		if len(req.Pereval.Images) > 0 && len(payloads) > 0 {
			if uc.opts.ImageUpdateMode == config.ImageUpdateReplace {
				if replaced, err = uc.repos.Images.DeleteByPerevalID(ctx, p.ID); err != nil {
					return uc.storageError(err)
				}
			}
			stored, err = uc.AttachImages(ctx, p, req.Pereval.Images, payloads)
			if err != nil {
				return err
			}
		}

		result = p
		return nil
	})
	if err != nil {
		if uc.opts.Atomic {
			uc.discardFiles(ctx, stored)
		} else {
			// часть изменений уже зафиксирована, кеш больше не соответствует БД
			uc.discardFiles(ctx, replaced)
			uc.invalidate(ctx, id)
		}
		uc.logger.Warn("Update failed", zap.Int64("pereval_id", id), zap.Error(err))
		return nil, err
	}

	// файлы замененных изображений удаляются только после фиксации
	uc.discardFiles(ctx, replaced)
	uc.invalidate(ctx, id)

	if err := uc.loadRelations(ctx, []*domain.Pereval{result}); err != nil {
		return nil, err
	}

	uc.logger.Info("Pereval updated", zap.Int64("pereval_id", id), zap.Int("new_images", len(stored)))
	return result, nil
}

// GetByID возвращает перевал со всеми связанными данными
func (uc *PerevalUseCase) GetByID(ctx context.Context, id int64) (*domain.Pereval, error) {
	cached, err := uc.cache.GetPereval(ctx, id)
	if err == nil && cached != nil {
		uc.logger.Debug("Pereval fetched from cache", zap.Int64("pereval_id", id))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get pereval from cache", zap.Int64("pereval_id", id), zap.Error(err))
	}

	p, err := uc.repos.Perevals.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.ErrPerevalNotFound
		}
		return nil, uc.storageError(err)
	}

	if err := uc.loadRelations(ctx, []*domain.Pereval{p}); err != nil {
		return nil, err
	}

	if err := uc.cache.SetPereval(ctx, p, uc.opts.CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache pereval", zap.Int64("pereval_id", id), zap.Error(err))
	}

	return p, nil
}

// ListByUserEmail возвращает перевалы пользователя, упорядоченные по ID
func (uc *PerevalUseCase) ListByUserEmail(ctx context.Context, email string) ([]domain.Pereval, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.ErrEmailRequired
	}

	list, err := uc.repos.Perevals.ListByUserEmail(ctx, email)
	if err != nil {
		return nil, uc.storageError(err)
	}

	ptrs := make([]*domain.Pereval, len(list))
	for i := range list {
		ptrs[i] = &list[i]
	}
	if err := uc.loadRelations(ctx, ptrs); err != nil {
		return nil, err
	}

	return list, nil
}

// SetStatus переводит перевал в новый статус модерации
func (uc *PerevalUseCase) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.IsValid() {
		return errors.Validationf("Недопустимый статус: %s", status)
	}

	err := uc.run(ctx, func(ctx context.Context) error {
		p, err := uc.repos.Perevals.GetByID(ctx, id)
		if err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return errors.ErrPerevalNotFound
			}
			return uc.storageError(err)
		}

		if !p.Status.CanTransitionTo(status) {
			return errors.Validationf("Недопустимый переход статуса: %s -> %s", p.Status, status)
		}

		if err := uc.repos.Perevals.SetStatus(ctx, id, status); err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return errors.ErrPerevalNotFound
			}
			return uc.storageError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	uc.logger.Info("Pereval status changed", zap.Int64("pereval_id", id), zap.String("status", string(status)))
	return nil
}

// GetImageContent возвращает содержимое изображения, хранящегося в БД
func (uc *PerevalUseCase) GetImageContent(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := uc.repos.Images.GetContent(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.ErrImageNotFound
		}
		return nil, uc.storageError(err)
	}
	if !img.IsInline() || len(img.Data) == 0 {
		return nil, errors.ErrImageNotFound
	}
	return img, nil
}

func (uc *PerevalUseCase) upsertLevel(ctx context.Context, p *domain.Pereval, req *dto.LevelRequest) (*domain.Level, error) {
	level := &domain.Level{PerevalID: p.ID}
	applyLevelFields(level, req)

	err := uc.repos.Levels.Update(ctx, level)
	if err == nil {
		return level, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, uc.storageError(err)
	}
	return uc.CreateLevel(ctx, p, req)
}

// loadRelations догружает уровни и изображения одним запросом на набор перевалов
func (uc *PerevalUseCase) loadRelations(ctx context.Context, perevals []*domain.Pereval) error {
	if len(perevals) == 0 {
		return nil
	}

	ids := make([]int64, len(perevals))
	for i, p := range perevals {
		ids[i] = p.ID
	}

	levels, err := uc.repos.Levels.ListByPerevalIDs(ctx, ids)
	if err != nil {
		return uc.storageError(err)
	}
	images, err := uc.repos.Images.ListByPerevalIDs(ctx, ids)
	if err != nil {
		return uc.storageError(err)
	}

	for _, p := range perevals {
		p.Level = levels[p.ID]
		p.Images = images[p.ID]
	}
	return nil
}

// run выполняет fn в транзакции, если включен атомарный режим
func (uc *PerevalUseCase) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !uc.opts.Atomic {
		return fn(ctx)
	}

	err := uc.repos.Transactor.WithinTx(ctx, fn)
	if err != nil {
		return uc.storageError(err)
	}
	return nil
}

// discardFiles удаляет внешние файлы изображений (best-effort)
func (uc *PerevalUseCase) discardFiles(ctx context.Context, images []domain.Image) {
	for i := range images {
		if err := uc.storage.Remove(ctx, &images[i]); err != nil {
			uc.logger.Warn("Failed to remove image file", zap.Int64("image_id", images[i].ID), zap.Error(err))
		}
	}
}

func (uc *PerevalUseCase) invalidate(ctx context.Context, id int64) {
	if err := uc.cache.DeletePereval(ctx, id); err != nil {
		uc.logger.Warn("Failed to invalidate pereval cache", zap.Int64("pereval_id", id), zap.Error(err))
	}
}

// storageError переводит ошибки хранилища в ошибки приложения
func (uc *PerevalUseCase) storageError(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, repository.ErrUnavailable) {
		uc.logger.Error("Database unavailable", zap.Error(err))
		return errors.ErrDatabaseUnavailable.Wrap(err)
	}
	uc.logger.Error("Storage error", zap.Error(err))
	return errors.Internal(err)
}

func applyPerevalFields(p *domain.Pereval, req *dto.PerevalRequest) {
	p.BeautyTitle = req.BeautyTitle
	p.Title = strings.TrimSpace(req.Title)
	p.OtherTitles = req.OtherTitles
	p.Connect = req.Connect
	if req.Coords != nil {
		if req.Coords.Latitude != nil {
			p.Coords.Latitude = *req.Coords.Latitude
		}
		if req.Coords.Longitude != nil {
			p.Coords.Longitude = *req.Coords.Longitude
		}
		if req.Coords.Height != nil {
			p.Coords.Height = *req.Coords.Height
		}
	}
}

func applyLevelFields(level *domain.Level, req *dto.LevelRequest) {
	if req == nil {
		return
	}
	level.Winter = req.Winter
	level.Summer = req.Summer
	level.Autumn = req.Autumn
	level.Spring = req.Spring
}

func errParentNotFound(id int64) *errors.AppError {
	return errors.Validationf("Район с parent_id %d не найден", id)
}

func imageError(err error) *errors.AppError {
	msg := err.Error()
	if appErr, ok := errors.As(err); ok {
		msg = appErr.Message
	}
	return errors.Validationf("Ошибка при создании изображения: %s", msg).Wrap(err)
}
