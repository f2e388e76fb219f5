package dto

import (
	"time"

	"github.com/pereval-service/internal/domain"
)

// UserResponse - пользователь в представлении перевала
type UserResponse struct {
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Patronymic *string `json:"patronymic"`
	Phone      *string `json:"phone"`
}

// AreaResponse - район в представлении перевала
type AreaResponse struct {
	Title    string `json:"title"`
	ParentID *int64 `json:"parent_id"`
}

// CoordsResponse - координаты перевала
type CoordsResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// LevelResponse - категории сложности
type LevelResponse struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

// ImageResponse - изображение; Image содержит абсолютный URL или null
type ImageResponse struct {
	Title     *string   `json:"title"`
	Image     *string   `json:"image"`
	DateAdded time.Time `json:"date_added"`
}

// PerevalResponse - полное представление перевала
type PerevalResponse struct {
	ID          int64           `json:"id"`
	BeautyTitle *string         `json:"beauty_title"`
	Title       string          `json:"title"`
	OtherTitles *string         `json:"other_titles"`
	Connect     *string         `json:"connect"`
	User        *UserResponse   `json:"user"`
	Area        *AreaResponse   `json:"area"`
	Coords      CoordsResponse  `json:"coords"`
	Level       *LevelResponse  `json:"level"`
	Images      []ImageResponse `json:"images"`
	Status      string          `json:"status"`
	DateAdded   time.Time       `json:"date_added"`
}

// SubmitResponse - ответ POST: {status, message, id}
type SubmitResponse struct {
	Status  int         `json:"status"`
	Message interface{} `json:"message"`
	ID      *int64      `json:"id"`
}

// StateResponse - ответ PATCH: {state, message}
type StateResponse struct {
	State   int         `json:"state"`
	Message interface{} `json:"message"`
}

// StatusMessageResponse - ответ об ошибке GET: {status, message}
type StatusMessageResponse struct {
	Status  int         `json:"status"`
	Message interface{} `json:"message"`
}

// ImageURLFunc строит ссылку на изображение
type ImageURLFunc func(image *domain.Image) *string

// NewPerevalResponse преобразует доменный перевал в представление
func NewPerevalResponse(p *domain.Pereval, imageURL ImageURLFunc) PerevalResponse {
	resp := PerevalResponse{
		ID:          p.ID,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		Coords: CoordsResponse{
			Latitude:  p.Coords.Latitude,
			Longitude: p.Coords.Longitude,
			Height:    p.Coords.Height,
		},
		Images:    make([]ImageResponse, 0, len(p.Images)),
		Status:    string(p.Status),
		DateAdded: p.DateAdded,
	}

	if p.User != nil {
		resp.User = &UserResponse{
			Email:      p.User.Email,
			FirstName:  p.User.FirstName,
			LastName:   p.User.LastName,
			Patronymic: p.User.Patronymic,
			Phone:      p.User.Phone,
		}
	}

	if p.Area != nil {
		resp.Area = &AreaResponse{Title: p.Area.Title, ParentID: p.Area.ParentID}
	}

	if p.Level != nil {
		resp.Level = &LevelResponse{
			Winter: p.Level.Winter,
			Summer: p.Level.Summer,
			Autumn: p.Level.Autumn,
			Spring: p.Level.Spring,
		}
	}

	for i := range p.Images {
		img := &p.Images[i]
		var url *string
		if imageURL != nil {
			url = imageURL(img)
		}
		resp.Images = append(resp.Images, ImageResponse{
			Title:     img.Title,
			Image:     url,
			DateAdded: img.DateAdded,
		})
	}

	return resp
}
