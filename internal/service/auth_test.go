package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/utils"
)

// fakeUserStore is an in-memory UserStore enforcing email uniqueness the
// way the database does.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // by id
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, email, password string, cost int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	f.seq++
	now := time.Now().UTC()
	u := &model.User{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService() *AuthService {
	return NewAuthService(newFakeUserStore(), "test-secret", 60, 4)
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService()
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.NotEqual(t, "pw1", u.PasswordHash)

	claims, err := utils.ParseAccessToken("test-secret", tok.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, u.Email, claims.Email)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@x.com", "pw2")
	require.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	u, tok, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.NotEmpty(t, tok.Token)

	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = svc.Profile(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
