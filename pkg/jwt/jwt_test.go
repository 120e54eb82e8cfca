package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "compras", "pedidos-api", 5)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, "compras", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "admin", "pedidos-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "admin", "pedidos-api", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "c-1", "admin", "pedidos-api", 5)
	assert.Error(t, err)
}

func TestGenerate_SinEmpresa(t *testing.T) {
	_, err := jwt.Generate("secreto", "u-1", "", "admin", "pedidos-api", 5)
	assert.ErrorIs(t, err, jwt.ErrMissingTenant)
}

// firmar construye un token con claims arbitrarios, sin pasar por Generate.
func firmar(t *testing.T, method gojwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func vigente() gojwt.RegisteredClaims {
	return gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))}
}

func TestParse_SinEmpresaEsRechazado(t *testing.T) {
	token := firmar(t, gojwt.SigningMethodHS256, []byte("secreto"), jwt.Claims{RegisteredClaims: vigente(), UserID: "u-1", Role: "admin"})

	_, _, _, err := jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, jwt.ErrMissingTenant)
}

func TestParse_SubjectDistintoDelUsuario(t *testing.T) {
	rc := vigente()
	rc.Subject = "u-2"
	token := firmar(t, gojwt.SigningMethodHS256, []byte("secreto"), jwt.Claims{RegisteredClaims: rc, UserID: "u-1", CompanyID: "c-1"})

	_, _, _, err := jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, jwt.ErrMissingTenant)
}

func TestParse_SinExpiracionEsRechazado(t *testing.T) {
	token := firmar(t, gojwt.SigningMethodHS256, []byte("secreto"), jwt.Claims{UserID: "u-1", CompanyID: "c-1"})

	_, _, _, err := jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenRequiredClaimMissing)
}

func TestParse_OtroAlgoritmoHMAC(t *testing.T) {
	token := firmar(t, gojwt.SigningMethodHS512, []byte("secreto"), jwt.Claims{RegisteredClaims: vigente(), UserID: "u-1", CompanyID: "c-1"})

	_, _, _, err := jwt.Parse("secreto", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}
