package user

import (
	"context"
	"database/sql"
	"testing"

	usererrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID    map[string]*User
	updated []User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*User)}
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByWorkerID(ctx context.Context, workerID string) (*User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByRut(ctx context.Context, rut string) (*User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *User) error {
	f.updated = append(f.updated, *u)
	f.byID[u.ID.String()] = u
	return nil
}

func TestUpdateRole_WhitelistEnforced(t *testing.T) {
	repo := newFakeUserRepo()
	u := &User{ID: uuid.New(), Role: RoleUsuario, Status: AccountActive}
	repo.byID[u.ID.String()] = u

	svc := NewService(repo, zap.NewNop())

	_, err := svc.UpdateRole(context.Background(), u.ID.String(), UpdateRoleRequest{Role: "Hacker"})
	require.Error(t, err)
	assert.ErrorIs(t, err, usererrors.ErrRoleNotAllowed)
	assert.Empty(t, repo.updated)

	_, err = svc.UpdateRole(context.Background(), u.ID.String(), UpdateRoleRequest{Role: RoleSuperAdmin})
	require.Error(t, err)
	assert.ErrorIs(t, err, usererrors.ErrRoleNotAllowed)
}

func TestUpdateRole_Success(t *testing.T) {
	repo := newFakeUserRepo()
	u := &User{ID: uuid.New(), Role: RoleUsuario, Status: AccountActive}
	repo.byID[u.ID.String()] = u

	svc := NewService(repo, zap.NewNop())

	resp, err := svc.UpdateRole(context.Background(), u.ID.String(), UpdateRoleRequest{Role: RoleHR})
	require.NoError(t, err)
	assert.Equal(t, RoleHR, resp.Role)
	require.Len(t, repo.updated, 1)
}

func TestUpdateRole_SuperAdminProtected(t *testing.T) {
	repo := newFakeUserRepo()
	u := &User{ID: uuid.New(), Role: RoleSuperAdmin, Status: AccountActive}
	repo.byID[u.ID.String()] = u

	svc := NewService(repo, zap.NewNop())

	_, err := svc.UpdateRole(context.Background(), u.ID.String(), UpdateRoleRequest{Role: RoleUsuario})
	require.Error(t, err)
	assert.ErrorIs(t, err, usererrors.ErrCannotEditSuperAdmin)
}

func TestUpdateRole_NotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo(), zap.NewNop())

	_, err := svc.UpdateRole(context.Background(), uuid.NewString(), UpdateRoleRequest{Role: RoleUsuario})
	require.Error(t, err)
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}
