package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
	"github.com/pereval-service/internal/pkg/errors"
	"github.com/pereval-service/internal/pkg/utils"
	"github.com/pereval-service/internal/pkg/validator"
	"github.com/pereval-service/internal/usecase"
	"github.com/pereval-service/internal/usecase/dto"
)

const (
	formFieldData   = "data"
	formFieldImages = "images"
)

// PerevalHandler обрабатывает запросы /submitData
type PerevalHandler struct {
	perevalUC *usecase.PerevalUseCase
	mediaURL  string
	logger    *zap.Logger
}

// NewPerevalHandler создает новый экземпляр PerevalHandler.
// mediaURL - префикс, под которым раздаются файлы изображений (например, /media/).
func NewPerevalHandler(perevalUC *usecase.PerevalUseCase, mediaURL string, logger *zap.Logger) *PerevalHandler {
	return &PerevalHandler{
		perevalUC: perevalUC,
		mediaURL:  mediaURL,
		logger:    logger,
	}
}

// List godoc
// @Summary Список перевалов пользователя
// @Description Возвращает все перевалы, отправленные пользователем с указанным email, упорядоченные по ID
// @Tags Pereval
// @Produce json
// @Param user__email query string true "Email пользователя"
// @Success 200 {array} dto.PerevalResponse
// @Failure 400 {object} dto.StatusMessageResponse
// @Failure 500 {object} dto.StatusMessageResponse
// @Router /submitData/ [get]
func (h *PerevalHandler) List(c *fiber.Ctx) error {
	email := c.Query("user__email")

	list, err := h.perevalUC.ListByUserEmail(c.Context(), email)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := make([]dto.PerevalResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewPerevalResponse(&list[i], h.imageURL(c)))
	}
	return utils.SendSuccess(c, resp)
}

// Get godoc
// @Summary Перевал по ID
// @Description Возвращает перевал с пользователем, районом, координатами, уровнем сложности и изображениями
// @Tags Pereval
// @Produce json
// @Param id path int true "ID перевала"
// @Success 200 {object} dto.PerevalResponse
// @Failure 404 {object} dto.StatusMessageResponse
// @Failure 500 {object} dto.StatusMessageResponse
// @Router /submitData/{id}/ [get]
func (h *PerevalHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrPerevalNotFound)
	}

	p, err := h.perevalUC.GetByID(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewPerevalResponse(p, h.imageURL(c)))
}

// Submit godoc
// @Summary Отправка нового перевала
// @Description Принимает multipart/form-data (поле data с JSON и файлы images) или JSON без файлов.
// @Description Пользователь и район создаются при первом упоминании, перевал получает статус new.
// @Tags Pereval
// @Accept mpfd,json
// @Produce json
// @Param data formData string false "JSON отправки: {user, area, pereval}"
// @Param images formData file false "Файлы изображений в порядке pereval.images"
// @Param request body dto.SubmitRequest false "Отправка без файлов"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} dto.SubmitResponse
// @Failure 500 {object} dto.SubmitResponse
// @Router /submitData/ [post]
func (h *PerevalHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	payloads, err := h.parseSubmission(c, &req)
	if err != nil {
		return utils.SendSubmitError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendSubmitError(c, err)
	}
	if err := checkImages(req.Pereval.Images, payloads); err != nil {
		return utils.SendSubmitError(c, err)
	}

	p, err := h.perevalUC.Submit(c.Context(), &req, payloads)
	if err != nil {
		return utils.SendSubmitError(c, err)
	}

	return utils.SendSubmitted(c, p.ID)
}

// Update godoc
// @Summary Редактирование перевала
// @Description Перезаписывает перевал, пока он в статусе new. Данные пользователя игнорируются.
// @Tags Pereval
// @Accept mpfd,json
// @Produce json
// @Param id path int true "ID перевала"
// @Param data formData string false "JSON: {area, pereval}"
// @Param images formData file false "Новые изображения"
// @Param request body dto.UpdateRequest false "Редактирование без файлов"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} dto.StateResponse
// @Failure 404 {object} dto.StateResponse
// @Failure 500 {object} dto.StateResponse
// @Router /submitData/{id}/ [patch]
func (h *PerevalHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendStateError(c, errors.ErrPerevalNotFound)
	}

	var req dto.UpdateRequest
	payloads, err := h.parseSubmission(c, &req)
	if err != nil {
		return utils.SendStateError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendStateError(c, err)
	}
	if err := checkImages(req.Pereval.Images, payloads); err != nil {
		return utils.SendStateError(c, err)
	}

	if _, err := h.perevalUC.Update(c.Context(), int64(id), &req, payloads); err != nil {
		return utils.SendStateError(c, err)
	}

	return utils.SendState(c)
}

// SetStatus godoc
// @Summary Смена статуса модерации
// @Description Переходы: new -> pending -> accepted | rejected
// @Tags Moderation
// @Accept json
// @Produce json
// @Param id path int true "ID перевала"
// @Param request body dto.StatusRequest true "Новый статус"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} dto.StateResponse
// @Failure 404 {object} dto.StateResponse
// @Router /submitData/{id}/status/ [patch]
func (h *PerevalHandler) SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendStateError(c, errors.ErrPerevalNotFound)
	}

	var req dto.StatusRequest
	if err := decodeJSON(c.Body(), &req); err != nil {
		return utils.SendStateError(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendStateError(c, err)
	}

	if err := h.perevalUC.SetStatus(c.Context(), int64(id), domain.Status(req.Status)); err != nil {
		return utils.SendStateError(c, err)
	}

	return utils.SendState(c)
}

// GetImage godoc
// @Summary Содержимое изображения
// @Description Отдает изображение, хранящееся в БД. Файлы с диска раздаются статически под MEDIA_URL.
// @Tags Media
// @Produce image/jpeg,image/png,image/gif,image/webp
// @Param id path int true "ID изображения"
// @Success 200 {file} binary
// @Failure 404 {object} dto.StatusMessageResponse
// @Router /media/images/{id} [get]
func (h *PerevalHandler) GetImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrImageNotFound)
	}

	img, err := h.perevalUC.GetImageContent(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(img.Data)
}

// parseSubmission разбирает тело запроса в dst и возвращает загруженные файлы.
// multipart: JSON в поле data и файлы в images; иначе тело - сам JSON.
func (h *PerevalHandler) parseSubmission(c *fiber.Ctx, dst interface{}) ([]repository.ImagePayload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := decodeJSON(c.Body(), dst); err != nil {
			return nil, err
		}
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Validationf("Некорректный multipart запрос: %v", err)
	}

	data := form.Value[formFieldData]
	if len(data) == 0 {
		return nil, errors.ErrInvalidJSON
	}
	if err := decodeJSON([]byte(data[0]), dst); err != nil {
		return nil, err
	}

	files := form.File[formFieldImages]
	payloads := make([]repository.ImagePayload, 0, len(files))
	for _, fh := range files {
		payload, err := readFile(fh)
		if err != nil {
			h.logger.Warn("Failed to read uploaded file", zap.String("filename", fh.Filename), zap.Error(err))
			return nil, errors.Validationf("Ошибка при создании изображения: %v", err)
		}
		payloads = append(payloads, payload)
	}

	return payloads, nil
}

// decodeJSON разбирает JSON в dst. Значение неверного типа в корректном JSON
// превращается в ошибку поля с путем вида pereval.coords.latitude.
func decodeJSON(data []byte, dst interface{}) error {
	err := json.Unmarshal(data, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.InvalidFields(map[string][]string{
			typeErr.Field: {typeMismatchMessage(typeErr)},
		})
	}
	return errors.ErrInvalidJSON.Wrap(err)
}

func typeMismatchMessage(e *json.UnmarshalTypeError) string {
	kind := e.Type.Kind()
	if kind == reflect.Ptr {
		kind = e.Type.Elem().Kind()
	}
	switch kind {
	case reflect.Float32, reflect.Float64:
		return "Требуется численное значение."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Требуется целочисленное значение."
	case reflect.String:
		return "Требуется строковое значение."
	case reflect.Slice:
		return "Ожидался список элементов."
	case reflect.Struct, reflect.Map:
		return "Ожидался объект."
	}
	return "Некорректное значение."
}

func readFile(fh *multipart.FileHeader) (repository.ImagePayload, error) {
	f, err := fh.Open()
	if err != nil {
		return repository.ImagePayload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return repository.ImagePayload{}, err
	}

	return repository.ImagePayload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// checkImages сверяет число описаний и файлов, если файлы были загружены
func checkImages(metas []dto.ImageMeta, payloads []repository.ImagePayload) error {
	if len(payloads) == 0 {
		return nil
	}
	return validator.CheckImageCount(len(metas), len(payloads))
}

// imageURL строит абсолютную ссылку на изображение от адреса запроса
func (h *PerevalHandler) imageURL(c *fiber.Ctx) dto.ImageURLFunc {
	base := c.BaseURL()
	mediaBase := base + h.mediaURL
	if strings.HasPrefix(h.mediaURL, "http://") || strings.HasPrefix(h.mediaURL, "https://") {
		mediaBase = h.mediaURL
	}
	return func(img *domain.Image) *string {
		var url string
		if img.IsInline() {
			if img.ID == 0 {
				return nil
			}
			url = fmt.Sprintf("%s/media/images/%d", base, img.ID)
		} else {
			url = mediaBase + *img.Path
		}
		return &url
	}
}
