package auth

import (
	"testing"
	"time"

	"luna27-backend/internal/config"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "clave-de-prueba-suficientemente-larga-123"

func testUsuario() *models.Usuario {
	sucursal := uint(3)
	return &models.Usuario{
		ID:         7,
		ProviderID: "prov-7",
		Email:      "gerente@luna27.mx",
		Nombre:     "Gerente Prueba",
		Rol:        models.RolManager,
		SucursalID: &sucursal,
		Activo:     true,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	usuario := testUsuario()

	token, err := GenerateSessionToken(testSecret, usuario)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := ParseSessionToken(testSecret, token)
	require.NotNil(t, claims)

	assert.Equal(t, usuario.ID, claims.UsuarioID)
	assert.Equal(t, usuario.ProviderID, claims.ProviderID)
	assert.Equal(t, usuario.Email, claims.Email)
	assert.Equal(t, usuario.Nombre, claims.Nombre)
	assert.Equal(t, usuario.Rol, claims.Rol)
	require.NotNil(t, claims.SucursalID)
	assert.Equal(t, *usuario.SucursalID, *claims.SucursalID)
}

func TestParseSessionTokenRechazaBasura(t *testing.T) {
	assert.Nil(t, ParseSessionToken(testSecret, ""))
	assert.Nil(t, ParseSessionToken(testSecret, "no-es-un-jwt"))
	assert.Nil(t, ParseSessionToken(testSecret, "aaa.bbb.ccc"))
}

func TestParseSessionTokenRechazaFirmaAjena(t *testing.T) {
	token, err := GenerateSessionToken("otra-clave-igual-de-larga-para-firmar-x", testUsuario())
	require.NoError(t, err)

	assert.Nil(t, ParseSessionToken(testSecret, token))
}

func TestParseSessionTokenRechazaVencido(t *testing.T) {
	claims := &SessionClaims{
		UsuarioID: 1,
		Email:     "x@luna27.mx",
		Rol:       models.RolStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Nil(t, ParseSessionToken(testSecret, token))
}

func TestSessionCookieAtributos(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, AppEnv: "development"}

	cookie := SessionCookie(cfg, "token-x")
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "luna27_session", cookie.Name)
	assert.Equal(t, "token-x", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HTTPOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, fiber.CookieSameSiteLaxMode, cookie.SameSite)

	cfg.AppEnv = "production"
	assert.True(t, SessionCookie(cfg, "token-x").Secure)

	vencida := ExpiredSessionCookie(cfg)
	assert.Equal(t, SessionCookieName, vencida.Name)
	assert.Less(t, vencida.MaxAge, 0)
}
