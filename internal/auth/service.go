package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rateio-app/rateio/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	users  repository.UserRepository
	secret []byte
}

func NewService(users repository.UserRepository, secret []byte) Service {
	return &service{users: users, secret: secret}
}

// Login checks the password against the stored bcrypt hash and issues an
// HS256 token. Lookup failures and bad passwords collapse into the same
// error so the response does not leak which usernames exist.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	token, err := claims.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return token, nil
}
