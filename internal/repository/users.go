package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

// User is an authentication record. Passwords are stored as bcrypt hashes.
type User struct {
	Username     string
	PasswordHash string
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	Upsert(ctx context.Context, user User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	row := r.db.QueryRowContext(ctx,
		`SELECT username, password_hash FROM users WHERE username = ?`, username)
	if err := row.Scan(&u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *userRepository) Upsert(ctx context.Context, user User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash`,
		user.Username, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// EnsureDefaultUser creates the bootstrap account when it does not exist
// yet. An existing user is left untouched so password changes survive
// restarts.
func EnsureDefaultUser(ctx context.Context, repo UserRepository, username, password string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if username == "" || password == "" {
		return errors.New("default user credentials not configured")
	}

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := repo.Upsert(ctx, User{Username: username, PasswordHash: string(hash)}); err != nil {
		return err
	}
	logger.Info("default user created", "username", username)
	return nil
}
