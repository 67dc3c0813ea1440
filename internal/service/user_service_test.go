package service

import (
	"context"
	"testing"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db))
}

func TestLogin_DefaultPINWhenNoneConfigured(t *testing.T) {
	svc := newUserService(t)
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "ana", Role: model.RoleViewer})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: model.DefaultPIN})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "ana", tokens.User.Name)

	_, err = svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: "9999"})
	assert.EqualError(t, err, "invalid user or PIN")
}

func TestLogin_BcryptPIN(t *testing.T) {
	svc := newUserService(t)
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "bruno", Role: model.RoleOperations, PIN: "5678"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: "5678"})
	assert.NoError(t, err)

	// Configured PIN replaces the default one
	_, err = svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: model.DefaultPIN})
	assert.Error(t, err)
}

func TestLogin_TokenValidatesAgainstMiddlewareSecret(t *testing.T) {
	svc := newUserService(t)
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "eva", Role: model.RoleOperations})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: model.DefaultPIN})
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokens.Token, func(*jwt.Token) (interface{}, error) {
		return middleware.GetJWTSecret(), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, model.RoleOperations, claims["role"])
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := newUserService(t)
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "carla", Role: model.RoleAdmin})
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), LoginRequest{UserID: user.ID.String(), PIN: model.DefaultPIN})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Old refresh token is single use
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.Error(t, err)
}

func TestCreateUser_RejectsUnknownRoleAndDuplicateName(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "dana", Role: "superuser"})
	assert.Error(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{Name: "dana", Role: model.RoleViewer})
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), CreateUserRequest{Name: "dana", Role: model.RoleAdmin})
	assert.EqualError(t, err, "user name already exists")
}
