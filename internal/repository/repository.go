package repository

import (
	"context"
	"database/sql"

	"social_dashboard/internal/models"
)

// Users persists account records. Uniqueness of username and email is
// enforced by the store; violations surface as plain errors from Create.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, fullName, dateOfBirth string) (*models.User, error)
	SetProfilePic(ctx context.Context, id int, picPath string) (*models.User, error)
}

// Metrics persists metric records. Every mutation is filtered by both the
// record id and the owner id; an owner mismatch is indistinguishable from a
// missing record (nil result / zero rows), on purpose.
type Metrics interface {
	Create(ctx context.Context, m models.Metric) error
	ListByOwner(ctx context.Context, userID int) ([]models.Metric, error)
	UpdateValue(ctx context.Context, id string, userID int, value string) (*models.Metric, error)
	Delete(ctx context.Context, id string, userID int) (bool, error)
}

type Repository struct {
	Users   Users
	Metrics Metrics
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserSQLite(db),
		Metrics: NewMetricSQLite(db),
	}
}
