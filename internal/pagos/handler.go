package pagos

import (
	"time"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PagoResponse struct {
	ID              uint              `json:"id"`
	SucursalID      uint              `json:"sucursalId"`
	CitaID          *uint             `json:"citaId"`
	TarjetaRegaloID *uint             `json:"tarjetaRegaloId"`
	Monto           float64           `json:"monto"`
	Metodo          models.MetodoPago `json:"metodo"`
	Estado          models.EstadoPago `json:"estado"`
	Fecha           string            `json:"fecha"`
	Concepto        string            `json:"concepto"`
}

type CreatePagoRequest struct {
	SucursalID uint              `json:"sucursalId"`
	CitaID     *uint             `json:"citaId"`
	Monto      float64           `json:"monto"`
	Metodo     models.MetodoPago `json:"metodo"`
	Fecha      string            `json:"fecha"` // YYYY-MM-DD, hoy si falta
	Concepto   string            `json:"concepto"`
}

func metodoValido(m models.MetodoPago) bool {
	switch m {
	case models.PagoEfectivo, models.PagoTarjeta, models.PagoRegalo, models.PagoTransfer:
		return true
	}
	return false
}

func newPagoResponse(p *models.Pago) PagoResponse {
	return PagoResponse{
		ID:              p.ID,
		SucursalID:      p.SucursalID,
		CitaID:          p.CitaID,
		TarjetaRegaloID: p.TarjetaRegaloID,
		Monto:           p.Monto,
		Metodo:          p.Metodo,
		Estado:          p.Estado,
		Fecha:           p.Fecha.Format("2006-01-02"),
		Concepto:        p.Concepto,
	}
}

// CreatePagoHandler - POST /api/pagos
// Los pagos con tarjeta de regalo no entran por acá sino por
// /api/tarjetas/:codigo/redimir, que descuenta el saldo y crea el pago junto.
func CreatePagoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePagoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.SucursalID == 0 || body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sucursal y monto positivo son obligatorios")
		}
		if !metodoValido(body.Metodo) {
			return fiber.NewError(fiber.StatusBadRequest, "Método de pago desconocido")
		}
		if body.Metodo == models.PagoRegalo {
			return fiber.NewError(fiber.StatusBadRequest, "Los pagos con tarjeta de regalo se registran al redimir la tarjeta")
		}

		fecha := time.Now()
		if body.Fecha != "" {
			parsed, err := time.Parse("2006-01-02", body.Fecha)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, formato esperado YYYY-MM-DD")
			}
			fecha = parsed
		}

		if body.CitaID != nil {
			var cita models.Cita
			if err := database.DB.First(&cita, *body.CitaID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La cita indicada no existe")
			}
		}

		pago := models.Pago{
			SucursalID: body.SucursalID,
			CitaID:     body.CitaID,
			Monto:      body.Monto,
			Metodo:     body.Metodo,
			Estado:     models.PagoRegistrado,
			Fecha:      fecha,
			Concepto:   body.Concepto,
		}

		if err := database.DB.Create(&pago).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el pago")
		}

		return c.Status(fiber.StatusCreated).JSON(newPagoResponse(&pago))
	}
}

// ListPagosHandler - GET /api/pagos?desde=&hasta=&metodo=&sucursalId=
func ListPagosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Pago{}).Order("fecha DESC, id DESC")

		if desde := c.Query("desde"); desde != "" {
			if t, err := time.Parse("2006-01-02", desde); err == nil {
				query = query.Where("fecha >= ?", t)
			}
		}
		if hasta := c.Query("hasta"); hasta != "" {
			if t, err := time.Parse("2006-01-02", hasta); err == nil {
				query = query.Where("fecha < ?", t.AddDate(0, 0, 1))
			}
		}
		if metodo := c.Query("metodo"); metodo != "" {
			query = query.Where("metodo = ?", metodo)
		}
		if sucursalID := c.QueryInt("sucursalId"); sucursalID > 0 {
			query = query.Where("sucursal_id = ?", sucursalID)
		}

		var pagos []models.Pago
		if err := query.Find(&pagos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pagos")
		}

		res := make([]PagoResponse, 0, len(pagos))
		for i := range pagos {
			res = append(res, newPagoResponse(&pagos[i]))
		}

		return c.JSON(res)
	}
}

// AnularPagoHandler - POST /api/pagos/:id/anular (manager o superior)
func AnularPagoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var pago models.Pago
		if err := database.DB.First(&pago, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pago no encontrado")
		}

		if pago.Estado == models.PagoAnulado {
			return fiber.NewError(fiber.StatusBadRequest, "El pago ya está anulado")
		}

		pago.Estado = models.PagoAnulado
		if err := database.DB.Save(&pago).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo anular el pago")
		}

		return c.JSON(newPagoResponse(&pago))
	}
}
