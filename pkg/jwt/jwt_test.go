package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "s-1", "CAISSE", "elikia-api", 10)
	require.NoError(t, err)

	claims, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "s-1", claims.SessionID)
	assert.Equal(t, "CAISSE", claims.Role)
	assert.Equal(t, "elikia-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "s-1", "ADMIN", "", 10)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "s-1", "ADMIN", "", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secret", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SinSesion(t *testing.T) {
	raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: "u-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = jwt.Parse("secret", raw)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "s", "ADMIN", "", 1)
	assert.Error(t, err)
	_, err = jwt.Parse("", "x")
	assert.Error(t, err)
}
