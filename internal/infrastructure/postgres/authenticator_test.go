package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signSupabase(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "0b7e6f3c-1111-2222-3333-444455556666",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"email": "caisse@elikia.cd",
	}
}

func TestAuthenticator_RolDesdeAppMetadata(t *testing.T) {
	claims := baseClaims()
	claims["app_metadata"] = map[string]any{"role": "caisse"}
	claims["user_metadata"] = map[string]any{"role": "ADMIN", "full_name": "Marie K."}

	u, err := NewAuthenticator(testSecret).Authenticate(context.Background(), repository.Credentials{IDToken: signSupabase(t, testSecret, claims)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCaisse, u.Role)
	assert.Equal(t, "Marie K.", u.Name)
	assert.Equal(t, "0b7e6f3c-1111-2222-3333-444455556666", u.ID)
}

func TestAuthenticator_RolDesdeUserMetadata(t *testing.T) {
	claims := baseClaims()
	claims["user_metadata"] = map[string]any{"role": "GESTOCK"}

	u, err := NewAuthenticator(testSecret).Authenticate(context.Background(), repository.Credentials{IDToken: signSupabase(t, testSecret, claims)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGestock, u.Role)
	assert.Equal(t, "caisse", u.Name)
}

func TestAuthenticator_Rechazos(t *testing.T) {
	a := NewAuthenticator(testSecret)
	ctx := context.Background()

	_, err := a.Authenticate(ctx, repository.Credentials{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = a.Authenticate(ctx, repository.Credentials{IDToken: signSupabase(t, "otro-secreto", baseClaims())})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired := baseClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err = a.Authenticate(ctx, repository.Credentials{IDToken: signSupabase(t, testSecret, expired)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	anon := baseClaims()
	anon["aud"] = "anon"
	_, err = a.Authenticate(ctx, repository.Credentials{IDToken: signSupabase(t, testSecret, anon)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
