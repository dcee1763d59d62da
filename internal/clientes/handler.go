package clientes

import (
	"strings"
	"time"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClienteResponse struct {
	ID              uint   `json:"id"`
	SucursalID      *uint  `json:"sucursalId"`
	Nombre          string `json:"nombre"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	FechaNacimiento string `json:"fechaNacimiento,omitempty"`
	Notas           string `json:"notas"`
	CreatedAt       string `json:"createdAt"`
}

type CreateClienteRequest struct {
	SucursalID      *uint  `json:"sucursalId"`
	Nombre          string `json:"nombre"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	FechaNacimiento string `json:"fechaNacimiento"` // YYYY-MM-DD
	Notas           string `json:"notas"`
}

type UpdateClienteRequest struct {
	SucursalID *uint   `json:"sucursalId"`
	Nombre     *string `json:"nombre"`
	Telefono   *string `json:"telefono"`
	Email      *string `json:"email"`
	Notas      *string `json:"notas"`
}

func newClienteResponse(cl *models.Cliente) ClienteResponse {
	res := ClienteResponse{
		ID:         cl.ID,
		SucursalID: cl.SucursalID,
		Nombre:     cl.Nombre,
		Telefono:   cl.Telefono,
		Email:      cl.Email,
		Notas:      cl.Notas,
		CreatedAt:  cl.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if cl.FechaNacimiento != nil {
		res.FechaNacimiento = cl.FechaNacimiento.Format("2006-01-02")
	}
	return res
}

func CreateClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del cliente es obligatorio")
		}

		cliente := models.Cliente{
			SucursalID: body.SucursalID,
			Nombre:     body.Nombre,
			Telefono:   strings.TrimSpace(body.Telefono),
			Email:      strings.TrimSpace(strings.ToLower(body.Email)),
			Notas:      body.Notas,
		}

		if body.FechaNacimiento != "" {
			fecha, err := time.Parse("2006-01-02", body.FechaNacimiento)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha de nacimiento inválida, formato esperado YYYY-MM-DD")
			}
			cliente.FechaNacimiento = &fecha
		}

		if err := database.DB.Create(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el cliente")
		}

		return c.Status(fiber.StatusCreated).JSON(newClienteResponse(&cliente))
	}
}

// ListClientesHandler - GET /api/clientes?q=&sucursalId=
// q busca por nombre o teléfono.
func ListClientesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Cliente{}).Order("nombre")

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			query = query.Where("nombre ILIKE ? OR telefono LIKE ?", like, like)
		}
		if sucursalID := c.QueryInt("sucursalId"); sucursalID > 0 {
			query = query.Where("sucursal_id = ?", sucursalID)
		}

		var clientes []models.Cliente
		if err := query.Find(&clientes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los clientes")
		}

		res := make([]ClienteResponse, 0, len(clientes))
		for i := range clientes {
			res = append(res, newClienteResponse(&clientes[i]))
		}

		return c.JSON(res)
	}
}

func GetClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		return c.JSON(newClienteResponse(&cliente))
	}
}

func UpdateClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		var body UpdateClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del cliente no puede quedar vacío")
			}
			cliente.Nombre = nombre
		}
		if body.Telefono != nil {
			cliente.Telefono = strings.TrimSpace(*body.Telefono)
		}
		if body.Email != nil {
			cliente.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Notas != nil {
			cliente.Notas = *body.Notas
		}
		if body.SucursalID != nil {
			cliente.SucursalID = body.SucursalID
		}

		if err := database.DB.Save(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el cliente")
		}

		return c.JSON(newClienteResponse(&cliente))
	}
}

// DeleteClienteHandler: borrado suave (gorm.DeletedAt), el historial de citas
// y pagos conserva la referencia.
func DeleteClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		if err := database.DB.Delete(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cliente")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
