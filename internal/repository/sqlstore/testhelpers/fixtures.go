package testhelpers

import (
	"context"
	"testing"

	"github.com/pereval-service/internal/domain"
	"github.com/pereval-service/internal/repository/sqlstore"
)

// Ptr возвращает указатель на значение
func Ptr[T any](v T) *T { return &v }

// CreateUser сохраняет пользователя напрямую через репозиторий
func CreateUser(t *testing.T, db *sqlstore.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, FirstName: "Иван", LastName: "Петров", Phone: Ptr("+79990000000")}
	if err := sqlstore.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user fixture: %v", err)
	}
	return u
}

// CreateArea сохраняет район
func CreateArea(t *testing.T, db *sqlstore.DB, title string, parentID *int64) *domain.Area {
	t.Helper()
	a := &domain.Area{Title: title, ParentID: parentID}
	if err := sqlstore.NewAreaRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("create area fixture: %v", err)
	}
	return a
}

// CreatePereval сохраняет перевал с уровнем сложности
func CreatePereval(t *testing.T, db *sqlstore.DB, user *domain.User, area *domain.Area, title string) *domain.Pereval {
	t.Helper()
	ctx := context.Background()

	p := &domain.Pereval{
		Title:  title,
		UserID: user.ID,
		AreaID: area.ID,
		Coords: domain.Coords{Latitude: 45.3842, Longitude: 7.1525, Height: 1200},
		Status: domain.StatusNew,
	}
	if err := sqlstore.NewPerevalRepository(db).Create(ctx, p); err != nil {
		t.Fatalf("create pereval fixture: %v", err)
	}

	level := &domain.Level{PerevalID: p.ID, Summer: Ptr("1А")}
	if err := sqlstore.NewLevelRepository(db).Create(ctx, level); err != nil {
		t.Fatalf("create level fixture: %v", err)
	}
	p.Level = level
	p.User = user
	p.Area = area
	return p
}
