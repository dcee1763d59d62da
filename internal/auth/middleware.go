package auth

import (
	"luna27-backend/internal/config"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUsuarioIDKey  = "usuario_id"
	CtxNombreKey     = "usuario_nombre"
	CtxRolKey        = "usuario_rol"
	CtxSucursalIDKey = "sucursal_id"
)

// SessionMiddleware protege todo lo que cuelga del dashboard: sin cookie
// válida no se pasa. Cookie ausente y cookie corrupta se tratan igual.
func SessionMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ParseSessionToken(cfg.JWTSecret, c.Cookies(SessionCookieName))
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Sesión inválida o inexistente")
		}

		c.Locals(CtxUsuarioIDKey, claims.UsuarioID)
		c.Locals(CtxNombreKey, claims.Nombre)
		c.Locals(CtxRolKey, claims.Rol)
		c.Locals(CtxSucursalIDKey, claims.SucursalID)

		return c.Next()
	}
}

// RequireRole compara rangos sobre el orden total admin > manager > staff:
// alcanza con tener un rol de nivel igual o superior al requerido.
func RequireRole(minimo models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals(CtxRolKey).(models.Rol)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol")
		}

		if rol.Nivel() < minimo.Nivel() {
			return fiber.NewError(fiber.StatusForbidden, "No tienes permisos para esta operación")
		}
		return c.Next()
	}
}

// RolActual lee el rol dejado por SessionMiddleware.
func RolActual(c *fiber.Ctx) models.Rol {
	if rol, ok := c.Locals(CtxRolKey).(models.Rol); ok {
		return rol
	}
	return ""
}

// UsuarioActualID lee el id de usuario dejado por SessionMiddleware.
func UsuarioActualID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(CtxUsuarioIDKey).(uint); ok {
		return id
	}
	return 0
}
