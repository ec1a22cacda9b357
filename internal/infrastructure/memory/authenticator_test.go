package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/memory"
)

func TestParseAccounts(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	accounts, err := memory.ParseAccounts("Admin@Elikia.cd:admin:" + string(hash) + ", caisse@elikia.cd:CAISSE:" + string(hash))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "admin@elikia.cd", accounts[0].User.Email)
	assert.Equal(t, entity.RoleAdmin, accounts[0].User.Role)
	assert.Equal(t, "admin", accounts[0].User.Name)

	_, err = memory.ParseAccounts("sin-formato")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	accounts, err = memory.ParseAccounts("")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestLocalAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := memory.NewLocalAuthenticator([]memory.Account{{
		User:         entity.User{ID: "u-1", Email: "stock@elikia.cd", Role: entity.RoleGestock},
		PasswordHash: string(hash),
	}})

	u, err := auth.Authenticate(context.Background(), repository.Credentials{Email: " STOCK@elikia.cd", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGestock, u.Role)

	_, err = auth.Authenticate(context.Background(), repository.Credentials{Email: "stock@elikia.cd", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = auth.Authenticate(context.Background(), repository.Credentials{Email: "otro@elikia.cd", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDemoAccounts_UnaPorRol(t *testing.T) {
	accounts, err := memory.DemoAccounts()
	require.NoError(t, err)
	roles := map[entity.Role]bool{}
	for _, a := range accounts {
		roles[a.User.Role] = true
	}
	assert.Len(t, roles, 3)

	auth := memory.NewLocalAuthenticator(accounts)
	u, err := auth.Authenticate(context.Background(), repository.Credentials{Email: "caisse@elikia.local", Password: "elikia"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCaisse, u.Role)
}
