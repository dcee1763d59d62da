package auth

import (
	"log"
	"strings"

	"luna27-backend/internal/config"
	"luna27-backend/internal/database"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UsuarioResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Nombre     string     `json:"nombre"`
	Rol        models.Rol `json:"rol"`
	SucursalID *uint      `json:"sucursalId"`
	Activo     bool       `json:"activo"`
}

func NewUsuarioResponse(u *models.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		SucursalID: u.SucursalID,
		Activo:     u.Activo,
	}
}

func LoginHandler(cfg *config.Config, prov identity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email y contraseña son obligatorios")
		}

		usuario, err := VerificarCredenciales(c.Context(), prov, body.Email, body.Password)
		if err != nil {
			// La causa real (credenciales, proveedor caído, error de base)
			// queda en el log; el cliente solo ve un rechazo genérico.
			log.Printf("Login rechazado para %s: %v", body.Email, err)
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		token, err := GenerateSessionToken(cfg.JWTSecret, usuario)
		if err != nil {
			log.Printf("No se pudo firmar el token de sesión: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo iniciar la sesión")
		}

		c.Cookie(SessionCookie(cfg, token))

		return c.JSON(fiber.Map{"user": NewUsuarioResponse(usuario)})
	}
}

func LogoutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(ExpiredSessionCookie(cfg))
		return c.JSON(fiber.Map{"success": true})
	}
}

// MeHandler responde con el perfil fresco de la base; si la fila ya no está
// (identidad sintetizada) responde con lo que dice el token.
func MeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ParseSessionToken(cfg.JWTSecret, c.Cookies(SessionCookieName))
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"user": nil})
		}

		var usuario models.Usuario
		if claims.UsuarioID != 0 {
			if err := database.DB.First(&usuario, claims.UsuarioID).Error; err == nil {
				res := fiber.Map{"user": NewUsuarioResponse(&usuario)}

				if usuario.SucursalID != nil {
					var sucursal models.Sucursal
					if err := database.DB.First(&sucursal, *usuario.SucursalID).Error; err == nil {
						res["sucursal"] = fiber.Map{
							"id":     sucursal.ID,
							"nombre": sucursal.Nombre,
						}
					}
				}

				return c.JSON(res)
			}
		}

		return c.JSON(fiber.Map{"user": UsuarioResponse{
			ID:         claims.UsuarioID,
			Email:      claims.Email,
			Nombre:     claims.Nombre,
			Rol:        claims.Rol,
			SucursalID: claims.SucursalID,
			Activo:     true,
		}})
	}
}
