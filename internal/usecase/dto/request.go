package dto

// UserRequest - данные пользователя в отправке
type UserRequest struct {
	Email      string  `json:"email" validate:"required,email,max=254"`
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Patronymic *string `json:"patronymic,omitempty" validate:"omitempty,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// AreaRequest - данные района
type AreaRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	ParentID *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

// CoordsRequest - координаты перевала
type CoordsRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude_range"`
	Longitude *float64 `json:"longitude" validate:"required,longitude_range"`
	Height    *int     `json:"height" validate:"required,height_range"`
}

// LevelRequest - категории сложности по сезонам
type LevelRequest struct {
	Winter *string `json:"winter,omitempty" validate:"omitempty,max=10"`
	Summer *string `json:"summer,omitempty" validate:"omitempty,max=10"`
	Autumn *string `json:"autumn,omitempty" validate:"omitempty,max=10"`
	Spring *string `json:"spring,omitempty" validate:"omitempty,max=10"`
}

// ImageMeta - описание одного загружаемого изображения
type ImageMeta struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=255"`
}

// PerevalRequest - данные перевала
type PerevalRequest struct {
	BeautyTitle *string        `json:"beauty_title,omitempty" validate:"omitempty,max=50"`
	Title       string         `json:"title" validate:"notblank,max=255"`
	OtherTitles *string        `json:"other_titles,omitempty" validate:"omitempty,max=255"`
	Connect     *string        `json:"connect,omitempty"`
	Coords      *CoordsRequest `json:"coords" validate:"required"`
	Level       *LevelRequest  `json:"level" validate:"required"`
	Images      []ImageMeta    `json:"images,omitempty" validate:"omitempty,dive"`
}

// SubmitRequest - тело POST /submitData/
type SubmitRequest struct {
	User    *UserRequest    `json:"user" validate:"required"`
	Area    *AreaRequest    `json:"area" validate:"required"`
	Pereval *PerevalRequest `json:"pereval" validate:"required"`
}

// UpdateRequest - тело PATCH /submitData/{id}/. Пользователь не редактируется.
type UpdateRequest struct {
	Area    *AreaRequest    `json:"area" validate:"required"`
	Pereval *PerevalRequest `json:"pereval" validate:"required"`
}

// StatusRequest - смена статуса модерации
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new pending accepted rejected"`
}
