package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func TestParseClaims_ValidaIssuer(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "co1", "admin", "pos-dashboard-api", 5)
	require.NoError(t, err)

	claims, err := jwt.ParseClaims(secret, "pos-dashboard-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "co1", claims.CompanyID)

	_, err = jwt.ParseClaims(secret, "otro-emisor", tok)
	assert.Error(t, err, "un issuer distinto debe rechazarse")
}

func TestParseClaims_SinCompany(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "", "admin", "", 5)
	require.NoError(t, err)

	_, err = jwt.ParseClaims(secret, "", tok)
	assert.Error(t, err)
}

func TestParseClaims_SinExpiracion(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: "u1", CompanyID: "co1"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.ParseClaims(secret, "", tok)
	assert.Error(t, err, "un token sin exp no se acepta")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u1", "co1", "admin", "", 5)
	assert.Error(t, err)
}

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "co1", "bodeguero", "pos-dashboard-api", 60)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "co1", companyID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "co1", "admin", "", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "co1", "admin", "", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
