package empleados

import (
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmpleadoResponse struct {
	ID             uint   `json:"id"`
	SucursalID     uint   `json:"sucursalId"`
	SucursalNombre string `json:"sucursalNombre,omitempty"`
	UsuarioID      *uint  `json:"usuarioId"`
	Nombre         string `json:"nombre"`
	Puesto         string `json:"puesto"`
	Telefono       string `json:"telefono"`
	Activo         bool   `json:"activo"`
	CreatedAt      string `json:"createdAt"`
}

type CreateEmpleadoRequest struct {
	SucursalID uint   `json:"sucursalId"`
	UsuarioID  *uint  `json:"usuarioId"`
	Nombre     string `json:"nombre"`
	Puesto     string `json:"puesto"`
	Telefono   string `json:"telefono"`
}

type UpdateEmpleadoRequest struct {
	SucursalID *uint   `json:"sucursalId"`
	UsuarioID  *uint   `json:"usuarioId"`
	Nombre     *string `json:"nombre"`
	Puesto     *string `json:"puesto"`
	Telefono   *string `json:"telefono"`
	Activo     *bool   `json:"activo"`
}

func newEmpleadoResponse(e *models.Empleado) EmpleadoResponse {
	res := EmpleadoResponse{
		ID:         e.ID,
		SucursalID: e.SucursalID,
		UsuarioID:  e.UsuarioID,
		Nombre:     e.Nombre,
		Puesto:     e.Puesto,
		Telefono:   e.Telefono,
		Activo:     e.Activo,
		CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.Sucursal.ID != 0 {
		res.SucursalNombre = e.Sucursal.Nombre
	}
	return res
}

func CreateEmpleadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmpleadoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" || body.SucursalID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y sucursal son obligatorios")
		}

		var sucursal models.Sucursal
		if err := database.DB.First(&sucursal, body.SucursalID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La sucursal indicada no existe")
		}

		empleado := models.Empleado{
			SucursalID: body.SucursalID,
			UsuarioID:  body.UsuarioID,
			Nombre:     body.Nombre,
			Puesto:     strings.TrimSpace(body.Puesto),
			Telefono:   strings.TrimSpace(body.Telefono),
			Activo:     true,
		}

		if err := database.DB.Create(&empleado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el empleado")
		}
		empleado.Sucursal = sucursal

		return c.Status(fiber.StatusCreated).JSON(newEmpleadoResponse(&empleado))
	}
}

// ListEmpleadosHandler - GET /api/empleados?sucursalId=&activos=
func ListEmpleadosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Sucursal").Order("nombre")

		if sucursalID := c.QueryInt("sucursalId"); sucursalID > 0 {
			query = query.Where("sucursal_id = ?", sucursalID)
		}
		if c.Query("activos") == "true" {
			query = query.Where("activo = ?", true)
		}

		var empleados []models.Empleado
		if err := query.Find(&empleados).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los empleados")
		}

		res := make([]EmpleadoResponse, 0, len(empleados))
		for i := range empleados {
			res = append(res, newEmpleadoResponse(&empleados[i]))
		}

		return c.JSON(res)
	}
}

func GetEmpleadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var empleado models.Empleado
		if err := database.DB.Preload("Sucursal").First(&empleado, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empleado no encontrado")
		}

		return c.JSON(newEmpleadoResponse(&empleado))
	}
}

func UpdateEmpleadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var empleado models.Empleado
		if err := database.DB.First(&empleado, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empleado no encontrado")
		}

		var body UpdateEmpleadoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			empleado.Nombre = nombre
		}
		if body.SucursalID != nil {
			var sucursal models.Sucursal
			if err := database.DB.First(&sucursal, *body.SucursalID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La sucursal indicada no existe")
			}
			empleado.SucursalID = *body.SucursalID
		}
		if body.UsuarioID != nil {
			empleado.UsuarioID = body.UsuarioID
		}
		if body.Puesto != nil {
			empleado.Puesto = strings.TrimSpace(*body.Puesto)
		}
		if body.Telefono != nil {
			empleado.Telefono = strings.TrimSpace(*body.Telefono)
		}
		if body.Activo != nil {
			empleado.Activo = *body.Activo
		}

		if err := database.DB.Save(&empleado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el empleado")
		}

		return c.JSON(newEmpleadoResponse(&empleado))
	}
}

func DeleteEmpleadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var empleado models.Empleado
		if err := database.DB.First(&empleado, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empleado no encontrado")
		}

		if err := database.DB.Delete(&empleado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el empleado")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
