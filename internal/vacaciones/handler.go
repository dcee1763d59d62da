package vacaciones

import (
	"log"
	"time"

	"luna27-backend/internal/audit"
	"luna27-backend/internal/auth"
	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SolicitudResponse struct {
	ID             uint                   `json:"id"`
	EmpleadoID     uint                   `json:"empleadoId"`
	EmpleadoNombre string                 `json:"empleadoNombre,omitempty"`
	UsuarioID      uint                   `json:"usuarioId"`
	Inicio         string                 `json:"inicio"`
	Fin            string                 `json:"fin"`
	Motivo         string                 `json:"motivo"`
	Estado         models.EstadoSolicitud `json:"estado"`
	ResueltaPor    *uint                  `json:"resueltaPor"`
	Comentario     string                 `json:"comentario"`
}

type CreateSolicitudRequest struct {
	EmpleadoID uint   `json:"empleadoId"`
	Inicio     string `json:"inicio"` // YYYY-MM-DD
	Fin        string `json:"fin"`
	Motivo     string `json:"motivo"`
}

type ResolverSolicitudRequest struct {
	Estado     models.EstadoSolicitud `json:"estado"` // aprobada | rechazada
	Comentario string                 `json:"comentario"`
}

func newSolicitudResponse(s *models.SolicitudVacaciones) SolicitudResponse {
	res := SolicitudResponse{
		ID:          s.ID,
		EmpleadoID:  s.EmpleadoID,
		UsuarioID:   s.UsuarioID,
		Inicio:      s.Inicio.Format("2006-01-02"),
		Fin:         s.Fin.Format("2006-01-02"),
		Motivo:      s.Motivo,
		Estado:      s.Estado,
		ResueltaPor: s.ResueltaPor,
		Comentario:  s.Comentario,
	}
	if s.Empleado.ID != 0 {
		res.EmpleadoNombre = s.Empleado.Nombre
	}
	return res
}

// CreateSolicitudHandler - POST /api/vacaciones
// Cualquier rol autenticado puede registrar una solicitud.
func CreateSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSolicitudRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.EmpleadoID == 0 || body.Inicio == "" || body.Fin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Empleado, inicio y fin son obligatorios")
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

		var empleado models.Empleado
		if err := database.DB.First(&empleado, body.EmpleadoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El empleado indicado no existe")
		}

		solicitud := models.SolicitudVacaciones{
			EmpleadoID: body.EmpleadoID,
			UsuarioID:  auth.UsuarioActualID(c),
			Inicio:     inicio,
			Fin:        fin,
			Motivo:     body.Motivo,
			Estado:     models.SolicitudPendiente,
		}

		if err := database.DB.Create(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la solicitud")
		}
		solicitud.Empleado = empleado

		return c.Status(fiber.StatusCreated).JSON(newSolicitudResponse(&solicitud))
	}
}

// ListSolicitudesHandler - GET /api/vacaciones?estado=
// El staff solo ve las solicitudes que registró; manager y admin ven todas.
func ListSolicitudesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Empleado").Order("created_at DESC")

		if auth.RolActual(c).Nivel() < models.RolManager.Nivel() {
			query = query.Where("usuario_id = ?", auth.UsuarioActualID(c))
		}
		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}

		var solicitudes []models.SolicitudVacaciones
		if err := query.Find(&solicitudes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las solicitudes")
		}

		res := make([]SolicitudResponse, 0, len(solicitudes))
		for i := range solicitudes {
			res = append(res, newSolicitudResponse(&solicitudes[i]))
		}

		return c.JSON(res)
	}
}

// ResolverSolicitudHandler - POST /api/vacaciones/:id/resolver (manager o superior)
func ResolverSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var solicitud models.SolicitudVacaciones
		if err := database.DB.Preload("Empleado").First(&solicitud, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Solicitud no encontrada")
		}

		if solicitud.Estado != models.SolicitudPendiente {
			return fiber.NewError(fiber.StatusBadRequest, "La solicitud ya fue resuelta")
		}

		var body ResolverSolicitudRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Estado != models.SolicitudAprobada && body.Estado != models.SolicitudRechazada {
			return fiber.NewError(fiber.StatusBadRequest, "El estado debe ser aprobada o rechazada")
		}

		resueltaPor := auth.UsuarioActualID(c)
		ahora := time.Now()
		solicitud.Estado = body.Estado
		solicitud.ResueltaPor = &resueltaPor
		solicitud.ResueltaEn = &ahora
		solicitud.Comentario = body.Comentario

		if err := database.DB.Save(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo resolver la solicitud")
		}

		if err := audit.WriteLog(audit.LogOptions{
			UsuarioID:   resueltaPor,
			EntityType:  "solicitud_vacaciones",
			EntityID:    solicitud.ID,
			Action:      models.AuditActionTransition,
			Description: "Solicitud de vacaciones " + string(body.Estado),
			After:       fiber.Map{"estado": body.Estado, "comentario": body.Comentario},
		}); err != nil {
			log.Printf("Auditoría no registrada: %v", err)
		}

		return c.JSON(newSolicitudResponse(&solicitud))
	}
}

// DeleteSolicitudHandler - DELETE /api/vacaciones/:id
// Solo el autor puede retirar su solicitud y solo mientras esté pendiente.
func DeleteSolicitudHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var solicitud models.SolicitudVacaciones
		if err := database.DB.First(&solicitud, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Solicitud no encontrada")
		}

		esAutor := solicitud.UsuarioID == auth.UsuarioActualID(c)
		if !esAutor && auth.RolActual(c).Nivel() < models.RolManager.Nivel() {
			return fiber.NewError(fiber.StatusForbidden, "Solo el autor puede retirar la solicitud")
		}
		if solicitud.Estado != models.SolicitudPendiente {
			return fiber.NewError(fiber.StatusBadRequest, "Una solicitud resuelta no puede retirarse")
		}

		if err := database.DB.Delete(&solicitud).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo retirar la solicitud")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
