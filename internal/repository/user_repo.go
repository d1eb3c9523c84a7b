package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"social_dashboard/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, full_name, date_of_birth, profile_pic)
		VALUES (?, ?, ?, ?, ?, '')`
	selectUserByLoginSQL = `SELECT id, username, email, password_hash, full_name, date_of_birth, profile_pic
		FROM users WHERE username = ? OR email = ?`
	selectUserByIDSQL = `SELECT id, username, email, password_hash, full_name, date_of_birth, profile_pic
		FROM users WHERE id = ?`

	updateUserProfileSQL = `UPDATE users SET full_name = ?, date_of_birth = ? WHERE id = ?`
	updateUserPicSQL     = `UPDATE users SET profile_pic = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID. Username/email uniqueness
// violations come back as the driver's constraint error, unwrapped.
func (r *UserSQLite) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.DateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByLogin fetches a user whose username OR email equals login.
// Returns (nil, nil) if not found.
func (r *UserSQLite) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByLoginSQL, login, login),
		fmt.Sprintf("select user by login %q", login))
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id),
		fmt.Sprintf("select user %d", id))
}

// UpdateProfile overwrites the mutable profile fields and returns the updated
// row. Returns (nil, nil) if the user does not exist.
func (r *UserSQLite) UpdateProfile(ctx context.Context, id int, fullName, dateOfBirth string) (*models.User, error) {
	if _, err := r.db.ExecContext(ctx, updateUserProfileSQL, fullName, dateOfBirth, id); err != nil {
		return nil, fmt.Errorf("update profile for user %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// SetProfilePic records the uploaded picture's relative path and returns the
// updated row. Returns (nil, nil) if the user does not exist.
func (r *UserSQLite) SetProfilePic(ctx context.Context, id int, picPath string) (*models.User, error) {
	if _, err := r.db.ExecContext(ctx, updateUserPicSQL, picPath, id); err != nil {
		return nil, fmt.Errorf("update profile pic for user %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserSQLite) scanOne(row *sql.Row, opDesc string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.DateOfBirth, &u.ProfilePic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", opDesc, err)
	}
	return &u, nil
}
