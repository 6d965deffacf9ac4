package users

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/validate"
)

type memoryUserRepo struct {
	users map[string]User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]User)}
}

func (r *memoryUserRepo) List(ctx context.Context) ([]User, error) {
	out := []User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) Get(ctx context.Context, id string) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.NotFound("User not found")
	}
	return u, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, shared.NotFound("User not found")
}

func (r *memoryUserRepo) Create(ctx context.Context, user User) (User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return User{}, shared.Duplicate("A user with this username or email already exists")
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user User) (User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return User{}, shared.NotFound("User not found")
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return shared.NotFound("User not found")
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}

type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, log shared.AuditLog) error { return nil }

func createUserReq(t *testing.T, payload string) CreateUserRequest {
	t.Helper()
	var req CreateUserRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	return req
}

func TestUserCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), nopAudit{})

	created, err := svc.Create(context.Background(),
		createUserReq(t, `{"username": "asha", "email": "asha@example.org", "password": "s3cret-pass", "fullName": "Asha K"}`),
		"admin-1")
	require.NoError(t, err)
	require.Equal(t, rbac.RoleAccountant, created.Role)
	require.Equal(t, StatusActive, created.Status)
	require.NotEqual(t, "s3cret-pass", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
}

func TestUserCreateValidation(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), nopAudit{})

	_, err := svc.Create(context.Background(),
		createUserReq(t, `{"username": "", "email": "bad", "password": "short", "fullName": "", "role": "superuser"}`),
		"admin-1")

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	byPath := map[string]string{}
	for _, e := range verrs {
		byPath[e.Path] = e.Message
	}
	require.Equal(t, "Username is required", byPath["username"])
	require.Equal(t, "Invalid email format", byPath["email"])
	require.Equal(t, "Password must be at least 8 characters", byPath["password"])
	require.Equal(t, "Full name is required", byPath["fullName"])
	require.Equal(t, "Role must be one of accountant, admin", byPath["role"])
}

func TestUserDuplicateUsernameConflicts(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), nopAudit{})

	_, err := svc.Create(context.Background(),
		createUserReq(t, `{"username": "asha", "email": "asha@example.org", "password": "s3cret-pass", "fullName": "Asha K"}`),
		"admin-1")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(),
		createUserReq(t, `{"username": "asha", "email": "other@example.org", "password": "s3cret-pass", "fullName": "Other"}`),
		"admin-1")
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUserUpdateDeactivatesAccountWithoutDeleting(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo, nopAudit{})

	created, err := svc.Create(context.Background(),
		createUserReq(t, `{"username": "asha", "email": "asha@example.org", "password": "s3cret-pass", "fullName": "Asha K", "role": "admin"}`),
		"admin-1")
	require.NoError(t, err)

	var upd UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status": "inactive"}`), &upd))
	require.Empty(t, upd.Validate())
	updated, err := svc.Update(context.Background(), created.ID, upd, "admin-1")
	require.NoError(t, err)
	require.Equal(t, StatusInactive, updated.Status)
	require.Equal(t, "admin", updated.Role)

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, StatusInactive, stored.Status)
}

func TestUserUpdateRejectsUnknownStatus(t *testing.T) {
	var upd UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status": "disabled"}`), &upd))
	errs := upd.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "status", errs[0].Path)
	require.Equal(t, "Status must be one of active, inactive", errs[0].Message)
}

func TestUserPasswordHashNeverMarshals(t *testing.T) {
	u := User{ID: "u-1", Username: "asha", PasswordHash: "hash"}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hash")
	require.NotContains(t, string(raw), "password")
}
