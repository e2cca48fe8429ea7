package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/validation"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, profile, err := env.auth.Register(RegisterInput{
		Email:     " Ana@Colegio.cl ",
		Password:  "tortuga-verde-42",
		Name:      "Ana",
		GroupName: "7A",
		Role:      model.RoleDirector, // ignored by public registration
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@colegio.cl", user.Email)
	assert.Equal(t, model.RoleStudent, profile.Role)
	assert.Equal(t, "7A", profile.GroupName)

	_, _, err = env.auth.Register(RegisterInput{Email: "ana@colegio.cl", Password: "tortuga-verde-42", Name: "Ana", GroupName: "7A"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, _, err = env.auth.Register(RegisterInput{Email: "b@colegio.cl", Password: "tortuga-verde-42", Name: "B"})
	assert.True(t, validation.IsValidationError(err), "students need a group")

	logged, err := env.auth.Login("ANA@colegio.cl", "tortuga-verde-42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = env.auth.Login("ana@colegio.cl", "wrong-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login("nobody@colegio.cl", "tortuga-verde-42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_CreateStaffAccount(t *testing.T) {
	env := newTestEnv(t)

	_, profile, err := env.auth.CreateAccount(RegisterInput{
		Email: "dir@colegio.cl", Password: "tortuga-verde-42", Name: "Directora", Role: model.RoleDirector,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleDirector, profile.Role)
	assert.Empty(t, profile.GroupName)

	_, _, err = env.auth.CreateAccount(RegisterInput{
		Email: "x@colegio.cl", Password: "tortuga-verde-42", Name: "X", Role: model.Role("admin"),
	})
	assert.True(t, validation.IsValidationError(err))
}

func TestAuthService_RegistrationClosed(t *testing.T) {
	env := newTestEnv(t)
	closed := NewAuthService(env.users, env.profiles, nil, "secret", time.Hour, false)

	_, _, err := closed.Register(RegisterInput{Email: "a@colegio.cl", Password: "tortuga-verde-42", Name: "A", GroupName: "7A"})
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestAuthService_JWT(t *testing.T) {
	env := newTestEnv(t)
	profile := env.account(t, model.RoleTeacher, "7A")
	user := &model.User{ID: profile.UserID}

	token, expiresAt, err := env.auth.GenerateJWT(user, profile)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := env.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)

	other := NewAuthService(env.users, env.profiles, nil, "another-secret", time.Hour, true)
	_, err = other.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.auth.VerifyJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	student := env.account(t, model.RoleStudent, "7A")

	_, err := env.gratitude.Create(student.UserID, "Gracias por el almuerzo", nil)
	require.NoError(t, err)

	users := NewUserService(env.users)
	require.NoError(t, users.Delete(student.UserID))

	entries, err := env.entries.Entries(student.UserID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = env.progressS.Progress(student.UserID)
	require.NoError(t, err, "missing progress reads as empty")
	assert.Error(t, users.Delete(student.UserID))
}
