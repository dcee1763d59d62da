package promociones

import (
	"strings"
	"time"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PromocionResponse struct {
	ID           uint    `json:"id"`
	SucursalID   *uint   `json:"sucursalId"`
	Nombre       string  `json:"nombre"`
	Descripcion  string  `json:"descripcion"`
	DescuentoPct float64 `json:"descuentoPct"`
	Inicio       string  `json:"inicio"`
	Fin          string  `json:"fin"`
	Activa       bool    `json:"activa"`
	Vigente      bool    `json:"vigente"` // activa y dentro de la ventana
}

type CreatePromocionRequest struct {
	SucursalID   *uint   `json:"sucursalId"`
	Nombre       string  `json:"nombre"`
	Descripcion  string  `json:"descripcion"`
	DescuentoPct float64 `json:"descuentoPct"`
	Inicio       string  `json:"inicio"` // YYYY-MM-DD
	Fin          string  `json:"fin"`
}

type UpdatePromocionRequest struct {
	Nombre       *string  `json:"nombre"`
	Descripcion  *string  `json:"descripcion"`
	DescuentoPct *float64 `json:"descuentoPct"`
	Inicio       *string  `json:"inicio"`
	Fin          *string  `json:"fin"`
	Activa       *bool    `json:"activa"`
}

func newPromocionResponse(p *models.Promocion) PromocionResponse {
	ahora := time.Now()
	return PromocionResponse{
		ID:           p.ID,
		SucursalID:   p.SucursalID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		DescuentoPct: p.DescuentoPct,
		Inicio:       p.Inicio.Format("2006-01-02"),
		Fin:          p.Fin.Format("2006-01-02"),
		Activa:       p.Activa,
		Vigente:      p.Activa && !ahora.Before(p.Inicio) && ahora.Before(p.Fin.AddDate(0, 0, 1)),
	}
}

func CreatePromocionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePromocionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" || body.Inicio == "" || body.Fin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, inicio y fin son obligatorios")
		}
		if body.DescuentoPct <= 0 || body.DescuentoPct > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "El descuento debe estar entre 0 y 100")
		}

		inicio, err := time.Parse("2006-01-02", body.Inicio)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Inicio inválido, formato esperado YYYY-MM-DD")
		}
		fin, err := time.Parse("2006-01-02", body.Fin)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fin inválido, formato esperado YYYY-MM-DD")
		}
		if fin.Before(inicio) {
			return fiber.NewError(fiber.StatusBadRequest, "El fin no puede ser anterior al inicio")
		}

		promocion := models.Promocion{
			SucursalID:   body.SucursalID,
			Nombre:       body.Nombre,
			Descripcion:  body.Descripcion,
			DescuentoPct: body.DescuentoPct,
			Inicio:       inicio,
			Fin:          fin,
			Activa:       true,
		}

		if err := database.DB.Create(&promocion).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la promoción")
		}

		return c.Status(fiber.StatusCreated).JSON(newPromocionResponse(&promocion))
	}
}

// ListPromocionesHandler - GET /api/promociones?vigentes=
func ListPromocionesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Promocion{}).Order("inicio DESC")

		if c.Query("vigentes") == "true" {
			hoy := time.Now()
			query = query.Where("activa = ? AND inicio <= ? AND fin >= ?", true, hoy, hoy.AddDate(0, 0, -1))
		}

		var promociones []models.Promocion
		if err := query.Find(&promociones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las promociones")
		}

		res := make([]PromocionResponse, 0, len(promociones))
		for i := range promociones {
			res = append(res, newPromocionResponse(&promociones[i]))
		}

		return c.JSON(res)
	}
}

func UpdatePromocionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var promocion models.Promocion
		if err := database.DB.First(&promocion, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Promoción no encontrada")
		}

		var body UpdatePromocionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			promocion.Nombre = nombre
		}
		if body.Descripcion != nil {
			promocion.Descripcion = *body.Descripcion
		}
		if body.DescuentoPct != nil {
			if *body.DescuentoPct <= 0 || *body.DescuentoPct > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El descuento debe estar entre 0 y 100")
			}
			promocion.DescuentoPct = *body.DescuentoPct
		}
		if body.Inicio != nil {
			inicio, err := time.Parse("2006-01-02", *body.Inicio)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Inicio inválido, formato esperado YYYY-MM-DD")
			}
			promocion.Inicio = inicio
		}
		if body.Fin != nil {
			fin, err := time.Parse("2006-01-02", *body.Fin)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fin inválido, formato esperado YYYY-MM-DD")
			}
			promocion.Fin = fin
		}
		if promocion.Fin.Before(promocion.Inicio) {
			return fiber.NewError(fiber.StatusBadRequest, "El fin no puede ser anterior al inicio")
		}
		if body.Activa != nil {
			promocion.Activa = *body.Activa
		}

		if err := database.DB.Save(&promocion).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la promoción")
		}

		return c.JSON(newPromocionResponse(&promocion))
	}
}

func DeletePromocionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var promocion models.Promocion
		if err := database.DB.First(&promocion, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Promoción no encontrada")
		}

		if err := database.DB.Delete(&promocion).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la promoción")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
