package domain

import (
	"math"
	"time"
)

// Status - статус модерации перевала
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo - new -> pending -> accepted|rejected
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusNew:
		return next == StatusPending
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	}
	return false
}

// User - автор отправки, идентифицируется по email
type User struct {
	ID         int64   `json:"id" db:"id"`
	Email      string  `json:"email" db:"email"`
	FirstName  string  `json:"first_name" db:"first_name"`
	LastName   string  `json:"last_name" db:"last_name"`
	Patronymic *string `json:"patronymic" db:"patronymic"`
	Phone      *string `json:"phone" db:"phone"`
}

// Area - географический район, может быть вложен в родительский
type Area struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	ParentID *int64 `json:"parent_id" db:"parent_id"`
}

// Coords - координаты перевала
type Coords struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Height    int     `json:"height" db:"height"`
}

// Normalize округляет широту и долготу до 6 знаков, как хранится в БД
func (c Coords) Normalize() Coords {
	c.Latitude = roundTo6(c.Latitude)
	c.Longitude = roundTo6(c.Longitude)
	return c
}

func roundTo6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Level - сезонные категории сложности перевала
type Level struct {
	ID        int64   `json:"id" db:"id"`
	PerevalID int64   `json:"pereval_id" db:"pereval_id"`
	Winter    *string `json:"winter" db:"winter"`
	Summer    *string `json:"summer" db:"summer"`
	Autumn    *string `json:"autumn" db:"autumn"`
	Spring    *string `json:"spring" db:"spring"`
}

// Image - изображение перевала. Содержимое хранится либо во внешнем файле (Path),
// либо в самой записи (Data).
type Image struct {
	ID          int64     `json:"id" db:"id"`
	PerevalID   int64     `json:"pereval_id" db:"pereval_id"`
	Title       *string   `json:"title" db:"title"`
	Path        *string   `json:"path" db:"path"`
	Data        []byte    `json:"-" db:"data"`
	ContentType string    `json:"content_type" db:"content_type"`
	DateAdded   time.Time `json:"date_added" db:"date_added"`
}

// IsInline - содержимое изображения хранится в БД
func (i *Image) IsInline() bool {
	return i.Path == nil || *i.Path == ""
}

// Pereval - горный перевал
type Pereval struct {
	ID          int64     `json:"id" db:"id"`
	BeautyTitle *string   `json:"beauty_title" db:"beauty_title"`
	Title       string    `json:"title" db:"title"`
	OtherTitles *string   `json:"other_titles" db:"other_titles"`
	Connect     *string   `json:"connect" db:"connect"`
	UserID      int64     `json:"user_id" db:"user_id"`
	AreaID      int64     `json:"area_id" db:"area_id"`
	Coords      Coords    `json:"coords"`
	Status      Status    `json:"status" db:"status"`
	DateAdded   time.Time `json:"date_added" db:"date_added"`

	User   *User   `json:"user,omitempty"`
	Area   *Area   `json:"area,omitempty"`
	Level  *Level  `json:"level,omitempty"`
	Images []Image `json:"images,omitempty"`
}

// IsEditable - редактирование разрешено только для новых перевалов
func (p *Pereval) IsEditable() bool {
	return p.Status == StatusNew
}
