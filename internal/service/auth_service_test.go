package service

import (
	"shikkha_backend/internal/config"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := openTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "Rahim",
		Email:    "rahim@example.com",
		Password: "sup3r-secret",
	}
	require.NoError(t, svc.Register(user))
	assert.NotEqual(t, "sup3r-secret", user.Password, "password must be stored hashed")

	token, err := svc.Login("rahim@example.com", "sup3r-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Name: "Rahim", Email: "rahim@example.com", Password: "pw1"}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "Karim", Email: "rahim@example.com", Password: "pw2"}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Rahim", Email: "rahim@example.com", Password: "right"}
	require.NoError(t, svc.Register(user))

	_, err := svc.Login("rahim@example.com", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody@example.com", "right")
	assert.Error(t, err)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Rahim", Email: "rahim@example.com", Password: "pw"}
	require.NoError(t, svc.Register(user))

	user.Disabled = true
	require.NoError(t, svc.UserRepo.Update(user))

	_, err := svc.Login("rahim@example.com", "pw")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}
