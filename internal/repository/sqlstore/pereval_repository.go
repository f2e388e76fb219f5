package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/domain/repository"
)

type perevalRepository struct {
	db *DB
}

// NewPerevalRepository создает репозиторий перевалов
func NewPerevalRepository(db *DB) repository.PerevalRepository {
	return &perevalRepository{db: db}
}

// perevalRow - строка перевала вместе с пользователем и районом
type perevalRow struct {
	ID          int64     `db:"id"`
	BeautyTitle *string   `db:"beauty_title"`
	Title       string    `db:"title"`
	OtherTitles *string   `db:"other_titles"`
	Connect     *string   `db:"connect"`
	UserID      int64     `db:"user_id"`
	AreaID      int64     `db:"area_id"`
	Latitude    float64   `db:"latitude"`
	Longitude   float64   `db:"longitude"`
	Height      int       `db:"height"`
	DateAdded   time.Time `db:"date_added"`
	Status      string    `db:"status"`

	UserEmail      string  `db:"user_email"`
	UserFirstName  string  `db:"user_first_name"`
	UserLastName   string  `db:"user_last_name"`
	UserPatronymic *string `db:"user_patronymic"`
	UserPhone      *string `db:"user_phone"`

	AreaTitle    string `db:"area_title"`
	AreaParentID *int64 `db:"area_parent_id"`
}

func (row *perevalRow) toDomain() domain.Pereval {
	return domain.Pereval{
		ID:          row.ID,
		BeautyTitle: row.BeautyTitle,
		Title:       row.Title,
		OtherTitles: row.OtherTitles,
		Connect:     row.Connect,
		UserID:      row.UserID,
		AreaID:      row.AreaID,
		Coords: domain.Coords{
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Height:    row.Height,
		},
		Status:    domain.Status(row.Status),
		DateAdded: row.DateAdded,
		User: &domain.User{
			ID:         row.UserID,
			Email:      row.UserEmail,
			FirstName:  row.UserFirstName,
			LastName:   row.UserLastName,
			Patronymic: row.UserPatronymic,
			Phone:      row.UserPhone,
		},
		Area: &domain.Area{
			ID:       row.AreaID,
			Title:    row.AreaTitle,
			ParentID: row.AreaParentID,
		},
	}
}

const selectPereval = `
	SELECT
		p.id, p.beauty_title, p.title, p.other_titles, p.connect,
		p.user_id, p.area_id, p.latitude, p.longitude, p.height,
		p.date_added, p.status,
		u.email AS user_email,
		u.first_name AS user_first_name,
		u.last_name AS user_last_name,
		u.patronymic AS user_patronymic,
		u.phone AS user_phone,
		a.title AS area_title,
		a.parent_id AS area_parent_id
	FROM perevals p
	JOIN users u ON u.id = p.user_id
	JOIN areas a ON a.id = p.area_id
`

func (r *perevalRepository) Create(ctx context.Context, p *domain.Pereval) error {
	coords := p.Coords.Normalize()
	if p.Status == "" {
		p.Status = domain.StatusNew
	}
	dateAdded := now()

	id, err := r.db.insertReturningID(ctx, `
		INSERT INTO perevals (
			beauty_title, title, other_titles, connect, user_id, area_id,
			latitude, longitude, height, date_added, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.BeautyTitle, p.Title, p.OtherTitles, p.Connect, p.UserID, p.AreaID,
		coords.Latitude, coords.Longitude, coords.Height, dateAdded, string(p.Status),
	)
	if err != nil {
		return fmt.Errorf("create pereval: %w", mapError(err))
	}

	p.ID = id
	p.Coords = coords
	p.DateAdded = dateAdded
	return nil
}

func (r *perevalRepository) GetByID(ctx context.Context, id int64) (*domain.Pereval, error) {
	var row perevalRow
	if err := r.db.get(ctx, &row, selectPereval+` WHERE p.id = ?`, id); err != nil {
		return nil, fmt.Errorf("get pereval %d: %w", id, mapError(err))
	}
	p := row.toDomain()
	return &p, nil
}

func (r *perevalRepository) ListByUserEmail(ctx context.Context, email string) ([]domain.Pereval, error) {
	var rows []perevalRow
	if err := r.db.selectAll(ctx, &rows, selectPereval+` WHERE u.email = ? ORDER BY p.id`, email); err != nil {
		return nil, fmt.Errorf("list perevals by email: %w", mapError(err))
	}

	result := make([]domain.Pereval, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}

func (r *perevalRepository) Update(ctx context.Context, p *domain.Pereval) error {
	coords := p.Coords.Normalize()

	// статус проверяется в самом UPDATE, чтобы параллельная модерация не была перезаписана
	res, err := r.db.exec(ctx, `
		UPDATE perevals SET
			beauty_title = ?, title = ?, other_titles = ?, connect = ?,
			area_id = ?, latitude = ?, longitude = ?, height = ?
		WHERE id = ? AND status = ?`,
		p.BeautyTitle, p.Title, p.OtherTitles, p.Connect,
		p.AreaID, coords.Latitude, coords.Longitude, coords.Height,
		p.ID, string(domain.StatusNew),
	)
	if err != nil {
		return fmt.Errorf("update pereval %d: %w", p.ID, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = r.notEditable(ctx, p.ID)
		}
		return fmt.Errorf("update pereval %d: %w", p.ID, err)
	}

	p.Coords = coords
	return nil
}

// notEditable различает отсутствующий перевал и перевал, ушедший из статуса new
func (r *perevalRepository) notEditable(ctx context.Context, id int64) error {
	var status string
	if err := r.db.get(ctx, &status, `SELECT status FROM perevals WHERE id = ?`, id); err != nil {
		return mapError(err)
	}
	return repository.ErrNotEditable
}

func (r *perevalRepository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := r.db.exec(ctx, `UPDATE perevals SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set pereval %d status: %w", id, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("set pereval %d status: %w", id, err)
	}
	return nil
}
