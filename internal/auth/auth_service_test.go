package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/auth/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByWorkerID(ctx context.Context, workerID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByRut(ctx context.Context, rut string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

func seedUser(t *testing.T, repo *fakeUserRepo, email, password, status string) *user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &user.User{
		ID:       uuid.New(),
		Name:     "Ana Soto",
		Email:    email,
		Password: string(hashed),
		Role:     user.RoleUsuario,
		Status:   status,
	}
	repo.add(u)
	return u
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	seedUser(t, repo, "ana.soto@lamas.com", "Secreta#123", user.AccountActive)

	svc := NewService(repo, zap.NewNop())

	access, refresh, resp, err := svc.Login(context.Background(), "ana.soto@lamas.com", "Secreta#123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "ana.soto@lamas.com", resp.Email)
	assert.Equal(t, user.RoleUsuario, resp.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana.soto@lamas.com", "Secreta#123", user.AccountActive)

	svc := NewService(repo, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), "ana.soto@lamas.com", "otra")
	require.Error(t, err)
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), "nadie@lamas.com", "lo-que-sea")
	require.Error(t, err)
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccountRejected(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana.soto@lamas.com", "Secreta#123", user.AccountInactive)

	svc := NewService(repo, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), "ana.soto@lamas.com", "Secreta#123")
	require.Error(t, err)
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	seedUser(t, repo, "ana.soto@lamas.com", "Secreta#123", user.AccountActive)

	svc := NewService(repo, zap.NewNop())

	_, refresh, _, err := svc.Login(context.Background(), "ana.soto@lamas.com", "Secreta#123")
	require.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, "ana.soto@lamas.com", resp.Email)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(newFakeUserRepo(), zap.NewNop())

	_, _, _, err := svc.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}
