package user_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*user.User)}
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyUsed
		}
	}

	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrNotFound
}

func newService() (user.Service, *fakeRepo) {
	repo := newFakeRepo()
	// MinCost keeps the hashing in tests fast.
	svc := user.NewService(repo, auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost))
	return svc, repo
}

func TestRegister(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u, err := svc.Register(ctx, "Alice", "  Alice@Example.COM ", "supersecret")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
		assert.Equal(t, user.RoleUser, u.Role, "self-registration never grants admin")
		assert.NotEqual(t, "supersecret", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Alice Again", "alice@example.com", "supersecret")
		assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "bob@example.com", "supersecret")
		assert.ErrorIs(t, err, user.ErrNameRequired)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Bob", "   ", "supersecret")
		assert.ErrorIs(t, err, user.ErrEmailRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "Bob", "bob@example.com", "short")
		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		u, err := svc.Login(ctx, "ALICE@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "not-the-password")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like bad credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestAdminLogin(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	guest, err := svc.Register(ctx, "Guest", "guest@example.com", "supersecret")
	require.NoError(t, err)

	admin, err := svc.Register(ctx, "Admin", "admin@example.com", "supersecret")
	require.NoError(t, err)

	// Promote directly in storage; there is no self-service path to admin.
	repo.mu.Lock()
	repo.users[admin.ID].Role = user.RoleAdmin
	repo.mu.Unlock()

	t.Run("admin gets in", func(t *testing.T) {
		u, err := svc.AdminLogin(ctx, "admin@example.com", "supersecret")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("regular user is refused", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, guest.Email, "supersecret")
		assert.ErrorIs(t, err, user.ErrNotAdmin)
	})

	t.Run("bad credentials beat the role check", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
