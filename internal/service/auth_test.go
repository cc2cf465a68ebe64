package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/auth"
	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func testAuthService(t *testing.T) *AuthService {
	t.Helper()

	keyHex, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	return NewAuthService(testStore(t), tokens, testLogger())
}

var setupReq = SetupRequest{
	Email:     "owner@example.com",
	Password:  "a-long-password",
	FirstName: "Pat",
	LastName:  "Owner",
}

func TestAuthService_SetupOnce(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	required, err := svc.IsSetupRequired(ctx)
	require.NoError(t, err)
	assert.True(t, required)

	resp, err := svc.Setup(ctx, setupReq)
	require.NoError(t, err)
	assert.True(t, resp.User.IsRoot)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.Empty(t, resp.User.PasswordHash)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Setup(ctx, setupReq)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyConfigured)
}

func TestAuthService_Login(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	_, err := svc.Setup(ctx, setupReq)
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "Owner@Example.COM", Password: "a-long-password"})
	require.NoError(t, err)
	assert.False(t, resp.User.LastLoginAt.IsZero())

	claims, err := svc.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.True(t, claims.IsRoot)
}

func TestAuthService_Login_SameErrorForBadEmailAndPassword(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	_, err := svc.Setup(ctx, setupReq)
	require.NoError(t, err)

	_, badPass := svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "wrong-password"})
	_, badEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "a-long-password"})

	require.Error(t, badPass)
	require.Error(t, badEmail)
	assert.ErrorIs(t, badPass, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, badPass.Error(), badEmail.Error())
}

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	_, err := svc.Setup(ctx, setupReq)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Email:     "OWNER@example.com",
		Password:  "another-password",
		FirstName: "Dup",
		LastName:  "User",
		Role:      "staff",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthService_Setup_Validation(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Setup(context.Background(), SetupRequest{Email: "not-an-email", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
