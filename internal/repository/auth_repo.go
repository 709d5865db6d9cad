package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"grain_dryer/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, fullname, email, password_hash) VALUES (?, ?, ?, ?)`
	selectUserSQL = `SELECT id, username, fullname, email, avatar, role, password_hash FROM users`

	updateProfileSQL = `UPDATE users SET username = ?, fullname = ?, email = ?, avatar = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(username, fullname, email, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, fullname, email, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne(selectUserSQL+` WHERE username = ?`, username)
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(selectUserSQL+` WHERE id = ?`, id)
}

func (r *UserRepository) getOne(query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Username, &u.Fullname, &u.Email, &u.Avatar, &u.Role, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user (%v): %w", arg, err)
	}
	return &u, nil
}

// UpdateProfile rewrites the mutable profile fields for u.ID.
func (r *UserRepository) UpdateProfile(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, updateProfileSQL, u.Username, u.Fullname, u.Email, u.Avatar, u.ID)
	if err != nil {
		return fmt.Errorf("update profile for user %d: %w", u.ID, err)
	}
	return nil
}
