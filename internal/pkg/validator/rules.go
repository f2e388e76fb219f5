package validator

import (
	"strings"

	"github.com/pereval-service/internal/pkg/errors"
)

const (
	msgLatitude     = "Широта должна быть в диапазоне от -90 до 90"
	msgLongitude    = "Долгота должна быть в диапазоне от -180 до 180"
	msgHeight       = "Высота не может быть отрицательной"
	msgUserRequired = "Поля email, first_name, last_name обязательны"
	msgAreaTitle    = "Поле title обязательно"
	msgBlankTitle   = "Название перевала не может быть пустым"
)

// CheckLatitude - широта в диапазоне [-90, 90]
func CheckLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return errors.Validation(msgLatitude)
	}
	return nil
}

// CheckLongitude - долгота в диапазоне [-180, 180]
func CheckLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return errors.Validation(msgLongitude)
	}
	return nil
}

// CheckHeight - высота неотрицательна
func CheckHeight(height int) error {
	if height < 0 {
		return errors.Validation(msgHeight)
	}
	return nil
}

// CheckRequiredUser - email, имя и фамилия обязательны
func CheckRequiredUser(email, firstName, lastName string) error {
	if email == "" || firstName == "" || lastName == "" {
		return errors.Validation(msgUserRequired)
	}
	return nil
}

// CheckAreaTitle - название района обязательно
func CheckAreaTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Validation(msgAreaTitle)
	}
	return nil
}

// CheckTitle - название перевала не пустое после обрезки пробелов
func CheckTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Validation(msgBlankTitle)
	}
	return nil
}

// CheckImageCount - количество описаний изображений совпадает с количеством файлов
func CheckImageCount(meta, files int) error {
	if meta != files {
		return errors.ErrImageCountMismatch
	}
	return nil
}
