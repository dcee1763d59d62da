package usuarios

import (
	"log"
	"strings"

	"luna27-backend/internal/audit"
	"luna27-backend/internal/auth"
	"luna27-backend/internal/database"
	"luna27-backend/internal/identity"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateUsuarioRequest struct {
	Email      string     `json:"email"`
	Nombre     string     `json:"nombre"`
	Rol        models.Rol `json:"rol"`
	SucursalID *uint      `json:"sucursalId"`
	Password   string     `json:"password"`
}

type UpdateUsuarioRequest struct {
	Nombre     *string     `json:"nombre"`
	Rol        *models.Rol `json:"rol"`
	SucursalID *uint       `json:"sucursalId"`
	Activo     *bool       `json:"activo"`
}

// ListUsuariosHandler - GET /api/usuarios (solo admin)
func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuarios []models.Usuario
		if err := database.DB.Order("id").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		res := make([]auth.UsuarioResponse, 0, len(usuarios))
		for i := range usuarios {
			res = append(res, auth.NewUsuarioResponse(&usuarios[i]))
		}

		return c.JSON(fiber.Map{"usuarios": res})
	}
}

// CreateUsuarioHandler - POST /api/usuarios (solo admin)
//
// Alta en dos pasos sin transacción compartida: primero la cuenta en el
// proveedor de identidad, después el perfil local. Si el insert local falla
// se borra la cuenta recién creada para no dejar identidades huérfanas.
func CreateUsuarioHandler(prov identity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Nombre = strings.TrimSpace(body.Nombre)

		if body.Email == "" || body.Nombre == "" || body.Rol == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email, nombre, rol y contraseña son obligatorios")
		}
		if body.Rol.Nivel() == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Rol desconocido")
		}

		if body.SucursalID != nil {
			var sucursal models.Sucursal
			if err := database.DB.First(&sucursal, *body.SucursalID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La sucursal indicada no existe")
			}
		}

		var existe models.Usuario
		if err := database.DB.Where("email = ?", body.Email).First(&existe).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Este email ya está registrado")
		}

		// Paso 1: cuenta en el proveedor
		cuenta, err := prov.AdminCreateUser(c.Context(), body.Email, body.Password, map[string]any{
			"nombre": body.Nombre,
			"rol":    string(body.Rol),
		})
		if err != nil {
			log.Printf("Alta en el proveedor falló para %s: %v", body.Email, err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		// Paso 2: perfil local
		usuario := models.Usuario{
			ProviderID: cuenta.ID,
			Email:      body.Email,
			Nombre:     body.Nombre,
			Rol:        body.Rol,
			SucursalID: body.SucursalID,
			Activo:     true,
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			log.Printf("Insert del perfil local falló para %s: %v", body.Email, err)
			// Acción compensatoria: deshacer el paso 1. Si también falla se
			// loguean ambos errores y se responde el original igualmente.
			if delErr := prov.AdminDeleteUser(c.Context(), cuenta.ID); delErr != nil {
				log.Printf("Compensación falló, identidad huérfana %s en el proveedor: %v", cuenta.ID, delErr)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		if err := audit.WriteLog(audit.LogOptions{
			SucursalID:  usuario.SucursalID,
			UsuarioID:   auth.UsuarioActualID(c),
			Usuario:     nombreActual(c),
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionCreate,
			Description: "Alta de usuario " + usuario.Email,
			After:       auth.NewUsuarioResponse(&usuario),
		}); err != nil {
			log.Printf("Auditoría no registrada: %v", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"usuario": auth.NewUsuarioResponse(&usuario)})
	}
}

// UpdateUsuarioHandler - PUT /api/usuarios/:id (solo admin)
func UpdateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		antes := auth.NewUsuarioResponse(&usuario)

		var body UpdateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			usuario.Nombre = nombre
		}
		if body.Rol != nil {
			if body.Rol.Nivel() == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Rol desconocido")
			}
			usuario.Rol = *body.Rol
		}
		if body.SucursalID != nil {
			var sucursal models.Sucursal
			if err := database.DB.First(&sucursal, *body.SucursalID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La sucursal indicada no existe")
			}
			usuario.SucursalID = body.SucursalID
		}
		if body.Activo != nil {
			usuario.Activo = *body.Activo
		}

		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
		}

		if err := audit.WriteLog(audit.LogOptions{
			SucursalID:  usuario.SucursalID,
			UsuarioID:   auth.UsuarioActualID(c),
			Usuario:     nombreActual(c),
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionUpdate,
			Description: "Modificación de usuario " + usuario.Email,
			Before:      antes,
			After:       auth.NewUsuarioResponse(&usuario),
		}); err != nil {
			log.Printf("Auditoría no registrada: %v", err)
		}

		return c.JSON(fiber.Map{"usuario": auth.NewUsuarioResponse(&usuario)})
	}
}

// DeactivateUsuarioHandler - DELETE /api/usuarios/:id (solo admin)
//
// Los usuarios nunca se borran físicamente: se marca Activo=false y el
// verificador de credenciales deja de aceptarlos.
func DeactivateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		if err := database.DB.Model(&usuario).Update("activo", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo desactivar el usuario")
		}

		if err := audit.WriteLog(audit.LogOptions{
			SucursalID:  usuario.SucursalID,
			UsuarioID:   auth.UsuarioActualID(c),
			Usuario:     nombreActual(c),
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionDelete,
			Description: "Desactivación de usuario " + usuario.Email,
			Before:      auth.NewUsuarioResponse(&usuario),
		}); err != nil {
			log.Printf("Auditoría no registrada: %v", err)
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

func nombreActual(c *fiber.Ctx) string {
	if nombre, ok := c.Locals(auth.CtxNombreKey).(string); ok {
		return nombre
	}
	return ""
}
