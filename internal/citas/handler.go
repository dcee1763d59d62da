package citas

import (
	"log"
	"time"

	"luna27-backend/internal/audit"
	"luna27-backend/internal/auth"
	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CitaResponse struct {
	ID             uint              `json:"id"`
	SucursalID     uint              `json:"sucursalId"`
	ClienteID      uint              `json:"clienteId"`
	ClienteNombre  string            `json:"clienteNombre,omitempty"`
	EmpleadoID     uint              `json:"empleadoId"`
	EmpleadoNombre string            `json:"empleadoNombre,omitempty"`
	ServicioID     uint              `json:"servicioId"`
	ServicioNombre string            `json:"servicioNombre,omitempty"`
	FechaHora      string            `json:"fechaHora"`
	Estado         models.EstadoCita `json:"estado"`
	Notas          string            `json:"notas"`
}

type CreateCitaRequest struct {
	SucursalID uint   `json:"sucursalId"`
	ClienteID  uint   `json:"clienteId"`
	EmpleadoID uint   `json:"empleadoId"`
	ServicioID uint   `json:"servicioId"`
	FechaHora  string `json:"fechaHora"` // RFC 3339
	Notas      string `json:"notas"`
}

type UpdateCitaRequest struct {
	EmpleadoID *uint   `json:"empleadoId"`
	ServicioID *uint   `json:"servicioId"`
	FechaHora  *string `json:"fechaHora"`
	Notas      *string `json:"notas"`
}

type TransicionCitaRequest struct {
	Estado models.EstadoCita `json:"estado"`
}

// transicionesCita define los cambios de estado permitidos.
var transicionesCita = map[models.EstadoCita][]models.EstadoCita{
	models.CitaPendiente:  {models.CitaConfirmada, models.CitaCancelada},
	models.CitaConfirmada: {models.CitaCompletada, models.CitaCancelada, models.CitaNoAsistio},
}

func transicionPermitida(desde, hacia models.EstadoCita) bool {
	for _, e := range transicionesCita[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

func newCitaResponse(cita *models.Cita) CitaResponse {
	res := CitaResponse{
		ID:         cita.ID,
		SucursalID: cita.SucursalID,
		ClienteID:  cita.ClienteID,
		EmpleadoID: cita.EmpleadoID,
		ServicioID: cita.ServicioID,
		FechaHora:  cita.FechaHora.Format(time.RFC3339),
		Estado:     cita.Estado,
		Notas:      cita.Notas,
	}
	if cita.Cliente.ID != 0 {
		res.ClienteNombre = cita.Cliente.Nombre
	}
	if cita.Empleado.ID != 0 {
		res.EmpleadoNombre = cita.Empleado.Nombre
	}
	if cita.Servicio.ID != 0 {
		res.ServicioNombre = cita.Servicio.Nombre
	}
	return res
}

func CreateCitaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCitaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.SucursalID == 0 || body.ClienteID == 0 || body.EmpleadoID == 0 || body.ServicioID == 0 || body.FechaHora == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Sucursal, cliente, empleado, servicio y fecha son obligatorios")
		}

		fecha, err := time.Parse(time.RFC3339, body.FechaHora)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, formato esperado RFC 3339")
		}

		var cliente models.Cliente
		if err := database.DB.First(&cliente, body.ClienteID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El cliente indicado no existe")
		}
		var empleado models.Empleado
		if err := database.DB.First(&empleado, body.EmpleadoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El empleado indicado no existe")
		}
		var servicio models.Servicio
		if err := database.DB.First(&servicio, body.ServicioID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El servicio indicado no existe")
		}

		cita := models.Cita{
			SucursalID: body.SucursalID,
			ClienteID:  body.ClienteID,
			EmpleadoID: body.EmpleadoID,
			ServicioID: body.ServicioID,
			FechaHora:  fecha,
			Estado:     models.CitaPendiente,
			Notas:      body.Notas,
		}

		if err := database.DB.Create(&cita).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la cita")
		}
		cita.Cliente = cliente
		cita.Empleado = empleado
		cita.Servicio = servicio

		return c.Status(fiber.StatusCreated).JSON(newCitaResponse(&cita))
	}
}

// ListCitasHandler - GET /api/citas?desde=&hasta=&sucursalId=&empleadoId=&estado=
func ListCitasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.
			Preload("Cliente").Preload("Empleado").Preload("Servicio").
			Order("fecha_hora")

		if desde := c.Query("desde"); desde != "" {
			if t, err := time.Parse("2006-01-02", desde); err == nil {
				query = query.Where("fecha_hora >= ?", t)
			}
		}
		if hasta := c.Query("hasta"); hasta != "" {
			if t, err := time.Parse("2006-01-02", hasta); err == nil {
				query = query.Where("fecha_hora < ?", t.AddDate(0, 0, 1))
			}
		}
		if sucursalID := c.QueryInt("sucursalId"); sucursalID > 0 {
			query = query.Where("sucursal_id = ?", sucursalID)
		}
		if empleadoID := c.QueryInt("empleadoId"); empleadoID > 0 {
			query = query.Where("empleado_id = ?", empleadoID)
		}
		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}

		var citas []models.Cita
		if err := query.Find(&citas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las citas")
		}

		res := make([]CitaResponse, 0, len(citas))
		for i := range citas {
			res = append(res, newCitaResponse(&citas[i]))
		}

		return c.JSON(res)
	}
}

func GetCitaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cita models.Cita
		if err := database.DB.
			Preload("Cliente").Preload("Empleado").Preload("Servicio").
			First(&cita, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cita no encontrada")
		}

		return c.JSON(newCitaResponse(&cita))
	}
}

func UpdateCitaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cita models.Cita
		if err := database.DB.First(&cita, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cita no encontrada")
		}

		if cita.Estado != models.CitaPendiente && cita.Estado != models.CitaConfirmada {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se pueden modificar citas pendientes o confirmadas")
		}

		var body UpdateCitaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.EmpleadoID != nil {
			var empleado models.Empleado
			if err := database.DB.First(&empleado, *body.EmpleadoID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El empleado indicado no existe")
			}
			cita.EmpleadoID = *body.EmpleadoID
		}
		if body.ServicioID != nil {
			var servicio models.Servicio
			if err := database.DB.First(&servicio, *body.ServicioID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El servicio indicado no existe")
			}
			cita.ServicioID = *body.ServicioID
		}
		if body.FechaHora != nil {
			fecha, err := time.Parse(time.RFC3339, *body.FechaHora)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, formato esperado RFC 3339")
			}
			cita.FechaHora = fecha
		}
		if body.Notas != nil {
			cita.Notas = *body.Notas
		}

		if err := database.DB.Save(&cita).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la cita")
		}

		return c.JSON(newCitaResponse(&cita))
	}
}

// TransicionCitaHandler - POST /api/citas/:id/estado
func TransicionCitaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cita models.Cita
		if err := database.DB.First(&cita, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cita no encontrada")
		}

		var body TransicionCitaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if !transicionPermitida(cita.Estado, body.Estado) {
			return fiber.NewError(fiber.StatusBadRequest, "Transición de estado no permitida")
		}

		anterior := cita.Estado
		cita.Estado = body.Estado
		if err := database.DB.Save(&cita).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado de la cita")
		}

		if err := audit.WriteLog(audit.LogOptions{
			SucursalID:  &cita.SucursalID,
			UsuarioID:   auth.UsuarioActualID(c),
			EntityType:  "cita",
			EntityID:    cita.ID,
			Action:      models.AuditActionTransition,
			Description: "Cita " + string(anterior) + " -> " + string(body.Estado),
			Before:      fiber.Map{"estado": anterior},
			After:       fiber.Map{"estado": body.Estado},
		}); err != nil {
			log.Printf("Auditoría no registrada: %v", err)
		}

		return c.JSON(newCitaResponse(&cita))
	}
}

// DeleteCitaHandler: borrado suave, el historial del cliente lo conserva.
func DeleteCitaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cita models.Cita
		if err := database.DB.First(&cita, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cita no encontrada")
		}

		if err := database.DB.Delete(&cita).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la cita")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
