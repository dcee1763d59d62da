package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"luna27-backend/internal/config"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appAuth(prov identity.Provider) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret, AppEnv: "development"}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Post("/api/auth/login", LoginHandler(cfg, prov))
	app.Post("/api/auth/logout", LogoutHandler(cfg))
	app.Get("/api/auth/me", MeHandler(cfg))
	return app
}

func cookieDeSesion(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginDejaCookieDeSesion(t *testing.T) {
	mock := dbFalsa(t)
	activo := &models.Usuario{ID: 4, ProviderID: "prov-4", Email: "ana@luna27.mx", Nombre: "Ana", Rol: models.RolManager, Activo: true}
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email =`).
		WillReturnRows(filasUsuario(activo))

	prov := &proveedorFalso{cuenta: &identity.ProviderUser{ID: "prov-4", Email: "ana@luna27.mx"}}
	app := appAuth(prov)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"ana@luna27.mx","password":"secreta"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := cookieDeSesion(t, resp)
	require.NotNil(t, cookie, "el login debe dejar la cookie de sesión")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.NotNil(t, ParseSessionToken(testSecret, cookie.Value), "la cookie debe contener un token válido")

	var res struct {
		User UsuarioResponse `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "ana@luna27.mx", res.User.Email)
	assert.Equal(t, models.RolManager, res.User.Rol)
}

func TestLoginCredencialesMalas(t *testing.T) {
	prov := &proveedorFalso{signInErr: identity.ErrCredencialesInvalidas}
	app := appAuth(prov)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"ana@luna27.mx","password":"mal"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, cookieDeSesion(t, resp))
}

// El cliente nunca ve la causa interna: proveedor caído responde igual que
// una contraseña equivocada.
func TestLoginProveedorCaidoRespondeGenerico(t *testing.T) {
	prov := &proveedorFalso{signInErr: identity.ErrProveedorNoDisponible}
	app := appAuth(prov)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"ana@luna27.mx","password":"secreta"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var res map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "Email o contraseña incorrectos", res["error"])
}

func TestLoginCamposVacios(t *testing.T) {
	app := appAuth(&proveedorFalso{})

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogoutVenceLaCookie(t *testing.T) {
	app := appAuth(&proveedorFalso{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/auth/logout", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := cookieDeSesion(t, resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0, "la cookie debe quedar vencida")

	var res map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, res["success"])
}

func TestMeSinSesion(t *testing.T) {
	app := appAuth(&proveedorFalso{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var res map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Nil(t, res["user"])
}

func TestMeConSesion(t *testing.T) {
	mock := dbFalsa(t)
	usuario := &models.Usuario{ID: 4, ProviderID: "prov-4", Email: "ana@luna27.mx", Nombre: "Ana", Rol: models.RolManager, Activo: true}
	mock.ExpectQuery(`SELECT \* FROM "usuarios"`).
		WillReturnRows(filasUsuario(usuario))

	app := appAuth(&proveedorFalso{})

	token, err := GenerateSessionToken(testSecret, usuario)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res struct {
		User UsuarioResponse `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, usuario.Email, res.User.Email)
}
