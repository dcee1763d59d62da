package tarjetas

import (
	"log"
	"time"

	"luna27-backend/internal/audit"
	"luna27-backend/internal/auth"
	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TarjetaResponse struct {
	ID           uint                 `json:"id"`
	SucursalID   uint                 `json:"sucursalId"`
	Codigo       string               `json:"codigo"`
	ClienteID    *uint                `json:"clienteId"`
	MontoInicial float64              `json:"montoInicial"`
	Saldo        float64              `json:"saldo"`
	Estado       models.EstadoTarjeta `json:"estado"`
	Vencimiento  string               `json:"vencimiento,omitempty"`
	TienePin     bool                 `json:"tienePin"`
}

type CreateTarjetaRequest struct {
	SucursalID   uint    `json:"sucursalId"`
	ClienteID    *uint   `json:"clienteId"`
	MontoInicial float64 `json:"montoInicial"`
	Vencimiento  string  `json:"vencimiento"` // YYYY-MM-DD, opcional
	Pin          string  `json:"pin"`         // opcional; se guarda hasheado
}

type RedimirTarjetaRequest struct {
	Monto  float64 `json:"monto"`
	CitaID *uint   `json:"citaId"`
	Pin    string  `json:"pin"`
}

func newTarjetaResponse(t *models.TarjetaRegalo) TarjetaResponse {
	res := TarjetaResponse{
		ID:           t.ID,
		SucursalID:   t.SucursalID,
		Codigo:       t.Codigo,
		ClienteID:    t.ClienteID,
		MontoInicial: t.MontoInicial,
		Saldo:        t.Saldo,
		Estado:       t.Estado,
		TienePin:     t.PinHash != "",
	}
	if t.Vencimiento != nil {
		res.Vencimiento = t.Vencimiento.Format("2006-01-02")
	}
	return res
}

// refrescarVencimiento marca la tarjeta como vencida al leerla si ya pasó su
// fecha. No hay planificador en el proceso, el estado se corrige en el acceso.
func refrescarVencimiento(t *models.TarjetaRegalo) {
	if t.Estado != models.TarjetaActiva && t.Estado != models.TarjetaPendiente {
		return
	}
	if t.Vencimiento != nil && t.Vencimiento.Before(time.Now()) {
		t.Estado = models.TarjetaVencida
		if err := database.DB.Model(t).Update("estado", models.TarjetaVencida).Error; err != nil {
			log.Printf("No se pudo marcar vencida la tarjeta %d: %v", t.ID, err)
		}
	}
}

// CreateTarjetaHandler - POST /api/tarjetas
// La tarjeta nace pendiente; hasta que se pague no se puede redimir.
func CreateTarjetaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTarjetaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.SucursalID == 0 || body.MontoInicial <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sucursal y monto inicial positivo son obligatorios")
		}

		tarjeta := models.TarjetaRegalo{
			SucursalID:   body.SucursalID,
			Codigo:       uuid.NewString(),
			ClienteID:    body.ClienteID,
			MontoInicial: body.MontoInicial,
			Saldo:        body.MontoInicial,
			Estado:       models.TarjetaPendiente,
		}

		if body.Vencimiento != "" {
			fecha, err := time.Parse("2006-01-02", body.Vencimiento)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Vencimiento inválido, formato esperado YYYY-MM-DD")
			}
			tarjeta.Vencimiento = &fecha
		}

		if body.Pin != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Pin), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo proteger el PIN")
			}
			tarjeta.PinHash = string(hash)
		}

		if err := database.DB.Create(&tarjeta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo emitir la tarjeta")
		}

		return c.Status(fiber.StatusCreated).JSON(newTarjetaResponse(&tarjeta))
	}
}

// ListTarjetasHandler - GET /api/tarjetas?estado=&clienteId=
func ListTarjetasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.TarjetaRegalo{}).Order("id DESC")

		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}
		if clienteID := c.QueryInt("clienteId"); clienteID > 0 {
			query = query.Where("cliente_id = ?", clienteID)
		}

		var tarjetas []models.TarjetaRegalo
		if err := query.Find(&tarjetas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las tarjetas")
		}

		res := make([]TarjetaResponse, 0, len(tarjetas))
		for i := range tarjetas {
			refrescarVencimiento(&tarjetas[i])
			res = append(res, newTarjetaResponse(&tarjetas[i]))
		}

		return c.JSON(res)
	}
}

// GetTarjetaHandler - GET /api/tarjetas/:codigo (búsqueda por código impreso)
func GetTarjetaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo := c.Params("codigo")

		var tarjeta models.TarjetaRegalo
		if err := database.DB.First(&tarjeta, "codigo = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarjeta no encontrada")
		}
		refrescarVencimiento(&tarjeta)

		return c.JSON(newTarjetaResponse(&tarjeta))
	}
}

// ActivarTarjetaHandler - POST /api/tarjetas/:codigo/activar
// pendiente -> activa, cuando el cobro de la tarjeta se concretó.
func ActivarTarjetaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo := c.Params("codigo")

		var tarjeta models.TarjetaRegalo
		if err := database.DB.First(&tarjeta, "codigo = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarjeta no encontrada")
		}
		refrescarVencimiento(&tarjeta)

		if tarjeta.Estado != models.TarjetaPendiente {
			return fiber.NewError(fiber.StatusBadRequest, "Solo una tarjeta pendiente puede activarse")
		}

		tarjeta.Estado = models.TarjetaActiva
		if err := database.DB.Save(&tarjeta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo activar la tarjeta")
		}

		registrarTransicion(c, &tarjeta, models.TarjetaPendiente, models.TarjetaActiva)

		return c.JSON(newTarjetaResponse(&tarjeta))
	}
}

// RedimirTarjetaHandler - POST /api/tarjetas/:codigo/redimir
// Descuenta saldo y deja el pago registrado. Saldo en cero agota la tarjeta.
func RedimirTarjetaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo := c.Params("codigo")

		var tarjeta models.TarjetaRegalo
		if err := database.DB.First(&tarjeta, "codigo = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarjeta no encontrada")
		}
		refrescarVencimiento(&tarjeta)

		if tarjeta.Estado != models.TarjetaActiva {
			return fiber.NewError(fiber.StatusBadRequest, "La tarjeta no está activa")
		}

		var body RedimirTarjetaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto a redimir debe ser positivo")
		}
		if body.Monto > tarjeta.Saldo {
			return fiber.NewError(fiber.StatusBadRequest, "Saldo insuficiente en la tarjeta")
		}

		if tarjeta.PinHash != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(tarjeta.PinHash), []byte(body.Pin)); err != nil {
				return fiber.NewError(fiber.StatusForbidden, "PIN incorrecto")
			}
		}

		estadoAnterior := tarjeta.Estado
		tarjeta.Saldo -= body.Monto
		if tarjeta.Saldo == 0 {
			tarjeta.Estado = models.TarjetaAgotada
		}

		if err := database.DB.Save(&tarjeta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo redimir la tarjeta")
		}

		pago := models.Pago{
			SucursalID:      tarjeta.SucursalID,
			CitaID:          body.CitaID,
			TarjetaRegaloID: &tarjeta.ID,
			Monto:           body.Monto,
			Metodo:          models.PagoRegalo,
			Estado:          models.PagoRegistrado,
			Fecha:           time.Now(),
			Concepto:        "Redención de tarjeta " + tarjeta.Codigo,
		}
		if err := database.DB.Create(&pago).Error; err != nil {
			log.Printf("La redención de la tarjeta %d quedó sin pago asociado: %v", tarjeta.ID, err)
		}

		if tarjeta.Estado != estadoAnterior {
			registrarTransicion(c, &tarjeta, estadoAnterior, tarjeta.Estado)
		}

		return c.JSON(newTarjetaResponse(&tarjeta))
	}
}

// CancelarTarjetaHandler - POST /api/tarjetas/:codigo/cancelar (manager o superior)
func CancelarTarjetaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codigo := c.Params("codigo")

		var tarjeta models.TarjetaRegalo
		if err := database.DB.First(&tarjeta, "codigo = ?", codigo).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarjeta no encontrada")
		}

		if tarjeta.Estado != models.TarjetaPendiente && tarjeta.Estado != models.TarjetaActiva {
			return fiber.NewError(fiber.StatusBadRequest, "La tarjeta ya no admite cancelación")
		}

		estadoAnterior := tarjeta.Estado
		tarjeta.Estado = models.TarjetaCancelada
		if err := database.DB.Save(&tarjeta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cancelar la tarjeta")
		}

		registrarTransicion(c, &tarjeta, estadoAnterior, models.TarjetaCancelada)

		return c.JSON(newTarjetaResponse(&tarjeta))
	}
}

func registrarTransicion(c *fiber.Ctx, t *models.TarjetaRegalo, desde, hacia models.EstadoTarjeta) {
	if err := audit.WriteLog(audit.LogOptions{
		SucursalID:  &t.SucursalID,
		UsuarioID:   auth.UsuarioActualID(c),
		EntityType:  "tarjeta_regalo",
		EntityID:    t.ID,
		Action:      models.AuditActionTransition,
		Description: "Tarjeta " + string(desde) + " -> " + string(hacia),
		Before:      fiber.Map{"estado": desde},
		After:       fiber.Map{"estado": hacia, "saldo": t.Saldo},
	}); err != nil {
		log.Printf("Auditoría no registrada: %v", err)
	}
}
