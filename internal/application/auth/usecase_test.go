package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "stock-ledger-test"
)

func newUseCase() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer}).
		WithBcryptCost(bcrypt.MinCost)
	return uc, store
}

func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)
	assert.Positive(t, out.UserID)

	uow, err := store.New(ctx)
	require.NoError(t, err)
	defer uow.Close()
	u, err := uow.Users().GetByID(ctx, out.UserID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEqual(t, "secreto123", u.PasswordHash, "el password no se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto123")))
}

func TestRegisterUser_UsernameDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "otro-pass1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, testIssuer, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, id)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
