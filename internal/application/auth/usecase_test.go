package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
	"github.com/jhoicas/labstock/internal/infrastructure/memory"
	"github.com/jhoicas/labstock/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*AuthUseCase, *entity.User) {
	t.Helper()
	store := memory.New()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	u := &entity.User{Username: "jdoe", PasswordHash: hash, FirstName: "John", LastName: "Doe", IsActive: true, Profile: entity.ProfileManager}
	require.NoError(t, store.Users().Create(context.Background(), u))
	inactive := &entity.User{Username: "old", PasswordHash: hash, IsActive: false}
	require.NoError(t, store.Users().Create(context.Background(), inactive))
	return NewAuthUseCase(store.Users(), JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "labstock"}), u
}

func TestVerify(t *testing.T) {
	uc, u := newAuth(t)
	ctx := context.Background()

	got, err := uc.Verify(ctx, "jdoe", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	for _, tc := range []struct{ user, pass string }{
		{"jdoe", "wrong"},
		{"ghost", "wrongpass"},
		{"old", "s3cret"},
	} {
		_, err := uc.Verify(ctx, tc.user, tc.pass)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, tc.user)
	}
}

type failingUsers struct{ repository.UserRepository }

func (failingUsers) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection refused")
}

func TestVerify_FallaDeRepositorio(t *testing.T) {
	uc := NewAuthUseCase(failingUsers{}, JWTConfig{})
	_, err := uc.Verify(context.Background(), "jdoe", "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestIdentity(t *testing.T) {
	uc, u := newAuth(t)
	got, err := uc.Identity(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.DisplayName())

	_, err = uc.Identity(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_EmiteToken(t *testing.T) {
	uc, u := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginForm{Username: "jdoe", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "MAN", out.User.Profile)

	id, profile, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "MAN", profile)
}
