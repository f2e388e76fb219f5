package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pereval-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Ключи ошибок строятся по JSON-именам полей
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("latitude_range", func(fl validator.FieldLevel) bool {
		return CheckLatitude(fl.Field().Float()) == nil
	})
	mustRegister("longitude_range", func(fl validator.FieldLevel) bool {
		return CheckLongitude(fl.Field().Float()) == nil
	})
	mustRegister("height_range", func(fl validator.FieldLevel) bool {
		return CheckHeight(int(fl.Field().Int())) == nil
	})
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return CheckTitle(fl.Field().String()) == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate - валидация структуры. Возвращает *errors.AppError с ошибками по полям или nil.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation(err.Error())
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		fields[key] = append(fields[key], message(key, fe))
	}

	return errors.InvalidFields(fields)
}

// fieldKey отбрасывает имя корневой структуры: "SubmitRequest.pereval.title" -> "pereval.title"
func fieldKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(key string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "latitude_range":
		return msgLatitude
	case "longitude_range":
		return msgLongitude
	case "height_range":
		return msgHeight
	case "notblank":
		return msgBlankTitle
	case "required":
		switch {
		case strings.HasPrefix(key, "user."):
			return msgUserRequired
		case key == "area.title":
			return msgAreaTitle
		}
		return "Обязательное поле."
	case "email":
		return "Введите правильный адрес электронной почты."
	case "max":
		return "Убедитесь, что это значение содержит не более " + fe.Param() + " символов."
	case "gt":
		return "Убедитесь, что это значение больше " + fe.Param() + "."
	}
	return "Некорректное значение."
}
