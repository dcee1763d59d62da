package sucursales

import (
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SucursalResponse struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	CreatedAt string `json:"createdAt"`
}

type CreateSucursalRequest struct {
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	Telefono  *string `json:"telefono"` // Opcional
}

type UpdateSucursalRequest struct {
	Nombre    *string `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

func newSucursalResponse(s *models.Sucursal) SucursalResponse {
	return SucursalResponse{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Telefono:  s.Telefono,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateSucursalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSucursalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre de la sucursal no puede estar vacío")
		}

		sucursal := models.Sucursal{
			Nombre:    body.Nombre,
			Direccion: body.Direccion,
		}
		if body.Telefono != nil {
			sucursal.Telefono = strings.TrimSpace(*body.Telefono)
		}

		if err := database.DB.Create(&sucursal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la sucursal")
		}

		return c.Status(fiber.StatusCreated).JSON(newSucursalResponse(&sucursal))
	}
}

func ListSucursalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sucursales []models.Sucursal
		if err := database.DB.Order("id").Find(&sucursales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las sucursales")
		}

		res := make([]SucursalResponse, 0, len(sucursales))
		for i := range sucursales {
			res = append(res, newSucursalResponse(&sucursales[i]))
		}

		return c.JSON(res)
	}
}

func GetSucursalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sucursal models.Sucursal
		if err := database.DB.First(&sucursal, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
		}

		return c.JSON(newSucursalResponse(&sucursal))
	}
}

func UpdateSucursalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sucursal models.Sucursal
		if err := database.DB.First(&sucursal, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
		}

		var body UpdateSucursalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre de la sucursal no puede estar vacío")
			}
			sucursal.Nombre = nombre
		}
		if body.Direccion != nil {
			sucursal.Direccion = *body.Direccion
		}
		if body.Telefono != nil {
			sucursal.Telefono = strings.TrimSpace(*body.Telefono)
		}

		if err := database.DB.Save(&sucursal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la sucursal")
		}

		return c.JSON(newSucursalResponse(&sucursal))
	}
}

func DeleteSucursalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cuenta int64
		database.DB.Model(&models.Usuario{}).Where("sucursal_id = ?", id).Count(&cuenta)
		if cuenta > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La sucursal tiene usuarios asignados")
		}

		if err := database.DB.Delete(&models.Sucursal{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la sucursal")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
