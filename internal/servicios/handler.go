package servicios

import (
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ServicioResponse struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	DuracionMin int     `json:"duracionMin"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Activo      bool    `json:"activo"`
}

type CreateServicioRequest struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	DuracionMin int     `json:"duracionMin"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
}

type UpdateServicioRequest struct {
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	DuracionMin *int     `json:"duracionMin"`
	Precio      *float64 `json:"precio"`
	Categoria   *string  `json:"categoria"`
	Activo      *bool    `json:"activo"`
}

func newServicioResponse(s *models.Servicio) ServicioResponse {
	return ServicioResponse{
		ID:          s.ID,
		Nombre:      s.Nombre,
		Descripcion: s.Descripcion,
		DuracionMin: s.DuracionMin,
		Precio:      s.Precio,
		Categoria:   s.Categoria,
		Activo:      s.Activo,
	}
}

func CreateServicioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateServicioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del servicio es obligatorio")
		}
		if body.DuracionMin <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La duración debe ser mayor a cero")
		}
		if body.Precio < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		servicio := models.Servicio{
			Nombre:      body.Nombre,
			Descripcion: body.Descripcion,
			DuracionMin: body.DuracionMin,
			Precio:      body.Precio,
			Categoria:   strings.TrimSpace(body.Categoria),
			Activo:      true,
		}

		if err := database.DB.Create(&servicio).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el servicio")
		}

		return c.Status(fiber.StatusCreated).JSON(newServicioResponse(&servicio))
	}
}

// ListServiciosHandler - GET /api/servicios?categoria=&activos=
func ListServiciosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Servicio{}).Order("categoria, nombre")

		if categoria := c.Query("categoria"); categoria != "" {
			query = query.Where("categoria = ?", categoria)
		}
		if c.Query("activos") == "true" {
			query = query.Where("activo = ?", true)
		}

		var servicios []models.Servicio
		if err := query.Find(&servicios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los servicios")
		}

		res := make([]ServicioResponse, 0, len(servicios))
		for i := range servicios {
			res = append(res, newServicioResponse(&servicios[i]))
		}

		return c.JSON(res)
	}
}

func UpdateServicioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var servicio models.Servicio
		if err := database.DB.First(&servicio, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Servicio no encontrado")
		}

		var body UpdateServicioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			servicio.Nombre = nombre
		}
		if body.Descripcion != nil {
			servicio.Descripcion = *body.Descripcion
		}
		if body.DuracionMin != nil {
			if *body.DuracionMin <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "La duración debe ser mayor a cero")
			}
			servicio.DuracionMin = *body.DuracionMin
		}
		if body.Precio != nil {
			if *body.Precio < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			servicio.Precio = *body.Precio
		}
		if body.Categoria != nil {
			servicio.Categoria = strings.TrimSpace(*body.Categoria)
		}
		if body.Activo != nil {
			servicio.Activo = *body.Activo
		}

		if err := database.DB.Save(&servicio).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el servicio")
		}

		return c.JSON(newServicioResponse(&servicio))
	}
}

func DeleteServicioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var servicio models.Servicio
		if err := database.DB.First(&servicio, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Servicio no encontrado")
		}

		if err := database.DB.Delete(&servicio).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el servicio")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
