// Package service holds the business logic between HTTP handlers and the
// repositories: authentication flows and the cached notes operations.
package service

import (
	"context"
	"errors"

	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/utils"
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are deliberately
// indistinguishable so the endpoint does not leak which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService owns registration, login and profile lookups. Tokens are
// minted here so handlers only deal with transport concerns.
type AuthService struct {
	users      UserStore
	jwtSecret  string
	ttlMin     int
	bcryptCost int
}

func NewAuthService(users UserStore, jwtSecret string, ttlMin, bcryptCost int) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, ttlMin: ttlMin, bcryptCost: bcryptCost}
}

// Register creates a user and immediately mints an access token for the
// new session. repository.ErrEmailExists passes through for the handler
// to map to 409.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, utils.AccessToken, error) {
	u, err := s.users.Create(ctx, email, password, s.bcryptCost)
	if err != nil {
		return nil, utils.AccessToken{}, err
	}
	tok, err := utils.NewAccessToken(s.jwtSecret, u.ID, u.Email, s.ttlMin)
	if err != nil {
		return nil, utils.AccessToken{}, err
	}
	return u, tok, nil
}

// Login verifies the credentials and mints an access token. Password
// verification is a bcrypt comparison, never plaintext equality.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, utils.AccessToken, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.AccessToken{}, ErrInvalidCredentials
		}
		return nil, utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, utils.AccessToken{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.jwtSecret, u.ID, u.Email, s.ttlMin)
	if err != nil {
		return nil, utils.AccessToken{}, err
	}
	return u, tok, nil
}

// Profile returns the user for an authenticated subject id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
