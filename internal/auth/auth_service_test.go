package auth_test

import (
	"context"
	"fmt"
	"testing"

	"guardshift/internal/auth"
	autherrors "guardshift/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*auth.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.Username]; ok {
		// Shaped like the postgres driver's unique-violation error.
		return fmt.Errorf("create user: %w", &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_users_username",
			Message:        `duplicate key value violates unique constraint "uq_users_username"`,
		})
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	u, ok := f.users[username]
	if !ok {
		return &auth.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return &auth.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindActiveByRoles(_ context.Context, roles []string) ([]auth.User, error) {
	var out []auth.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r && u.IsActive {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string, active bool) *auth.User {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	u := &auth.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(pw),
		Role:     role,
		IsActive: active,
	}
	repo.users[username] = u
	return u
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	service := auth.NewService(repo)
	ctx := context.Background()

	seedUser(t, repo, "svetlana", "password123", "Supervisor", true)
	seedUser(t, repo, "former", "password123", "Supervisor", false)

	t.Run("success", func(t *testing.T) {
		token, refreshToken, resp, err := service.Login(ctx, "svetlana", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, "svetlana", resp.Username)
		assert.Equal(t, "Supervisor", resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "svetlana", "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error as wrong password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "former", "password123")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	service := auth.NewService(repo)
	ctx := context.Background()

	seedUser(t, repo, "svetlana", "password123", "Supervisor", true)

	_, refreshToken, _, err := service.Login(ctx, "svetlana", "password123")
	require.NoError(t, err)

	t.Run("valid refresh issues new pair", func(t *testing.T) {
		access, refresh, resp, err := service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "svetlana", resp.Username)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("refresh picks up role change", func(t *testing.T) {
		repo.users["svetlana"].Role = "Business Support Officer"

		_, _, resp, err := service.RefreshToken(ctx, refreshToken)
		assert.NoError(t, err)
		assert.Equal(t, "Business Support Officer", resp.Role)
	})
}

func TestService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	service := auth.NewService(repo)
	ctx := context.Background()

	t.Run("success hashes the password", func(t *testing.T) {
		resp, err := service.Register(ctx, auth.RegisterRequest{
			Username: "newstaff",
			Password: "password123",
			Role:     "Business Support Officer",
		})

		require.NoError(t, err)
		assert.Equal(t, "newstaff", resp.Username)

		stored := repo.users["newstaff"]
		assert.NotEqual(t, "password123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterRequest{
			Username: "newstaff",
			Password: "password123",
			Role:     "Supervisor",
		})
		assert.ErrorIs(t, err, autherrors.ErrUsernameTaken)
	})
}
