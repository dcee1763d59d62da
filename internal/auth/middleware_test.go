package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"luna27-backend/internal/config"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRolNivel(t *testing.T) {
	if models.RolAdmin.Nivel() <= models.RolManager.Nivel() {
		t.Fatalf("admin debe estar por encima de manager")
	}
	if models.RolManager.Nivel() <= models.RolStaff.Nivel() {
		t.Fatalf("manager debe estar por encima de staff")
	}
	if models.Rol("recepcionista").Nivel() != 0 {
		t.Fatalf("un rol desconocido no debe tener nivel")
	}
}

func appProtegida(cfg *config.Config, requerido models.Rol) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	grupo := app.Group("/api", SessionMiddleware(cfg))
	if requerido != "" {
		grupo.Use(RequireRole(requerido))
	}
	grupo.Get("/recurso", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"rol": RolActual(c)})
	})
	return app
}

func TestSessionMiddlewareSinCookie(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := appProtegida(cfg, "")

	req := httptest.NewRequest("GET", "/api/recurso", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddlewareCookieCorrupta(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := appProtegida(cfg, "")

	req := httptest.NewRequest("GET", "/api/recurso", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "basura.sin.sentido"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// La matriz completa del orden total admin > manager > staff: se permite el
// acceso exactamente cuando el nivel del rol alcanza el requerido.
func TestRequireRoleMatriz(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}

	casos := []struct {
		rol       models.Rol
		requerido models.Rol
		status    int
	}{
		{models.RolAdmin, models.RolAdmin, fiber.StatusOK},
		{models.RolAdmin, models.RolManager, fiber.StatusOK},
		{models.RolAdmin, models.RolStaff, fiber.StatusOK},
		{models.RolManager, models.RolAdmin, fiber.StatusForbidden},
		{models.RolManager, models.RolManager, fiber.StatusOK},
		{models.RolManager, models.RolStaff, fiber.StatusOK},
		{models.RolStaff, models.RolAdmin, fiber.StatusForbidden},
		{models.RolStaff, models.RolManager, fiber.StatusForbidden},
		{models.RolStaff, models.RolStaff, fiber.StatusOK},
	}

	for _, caso := range casos {
		app := appProtegida(cfg, caso.requerido)

		token, err := GenerateSessionToken(cfg.JWTSecret, &models.Usuario{
			ID: 1, Email: "t@luna27.mx", Nombre: "T", Rol: caso.rol, Activo: true,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/recurso", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equalf(t, caso.status, resp.StatusCode, "rol=%s requerido=%s", caso.rol, caso.requerido)
	}
}
