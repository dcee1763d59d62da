package inventario

import (
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductoResponse struct {
	ID          uint    `json:"id"`
	SucursalID  uint    `json:"sucursalId"`
	Nombre      string  `json:"nombre"`
	SKU         string  `json:"sku"`
	Unidad      string  `json:"unidad"`
	Stock       int     `json:"stock"`
	StockMinimo int     `json:"stockMinimo"`
	Costo       float64 `json:"costo"`
	Precio      float64 `json:"precio"`
	BajoMinimo  bool    `json:"bajoMinimo"` // true cuando hay que reponer
}

type CreateProductoRequest struct {
	SucursalID  uint    `json:"sucursalId"`
	Nombre      string  `json:"nombre"`
	SKU         string  `json:"sku"`
	Unidad      string  `json:"unidad"`
	Stock       int     `json:"stock"`
	StockMinimo int     `json:"stockMinimo"`
	Costo       float64 `json:"costo"`
	Precio      float64 `json:"precio"`
}

type UpdateProductoRequest struct {
	Nombre      *string  `json:"nombre"`
	SKU         *string  `json:"sku"`
	Unidad      *string  `json:"unidad"`
	StockMinimo *int     `json:"stockMinimo"`
	Costo       *float64 `json:"costo"`
	Precio      *float64 `json:"precio"`
}

type AjusteStockRequest struct {
	Cantidad int    `json:"cantidad"` // positivo entra, negativo sale
	Motivo   string `json:"motivo"`
}

func newProductoResponse(p *models.ProductoInventario) ProductoResponse {
	return ProductoResponse{
		ID:          p.ID,
		SucursalID:  p.SucursalID,
		Nombre:      p.Nombre,
		SKU:         p.SKU,
		Unidad:      p.Unidad,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		Costo:       p.Costo,
		Precio:      p.Precio,
		BajoMinimo:  p.Stock < p.StockMinimo,
	}
}

func CreateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Unidad = strings.TrimSpace(body.Unidad)
		if body.Nombre == "" || body.Unidad == "" || body.SucursalID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, unidad y sucursal son obligatorios")
		}

		producto := models.ProductoInventario{
			SucursalID:  body.SucursalID,
			Nombre:      body.Nombre,
			SKU:         strings.TrimSpace(body.SKU),
			Unidad:      body.Unidad,
			Stock:       body.Stock,
			StockMinimo: body.StockMinimo,
			Costo:       body.Costo,
			Precio:      body.Precio,
		}

		if err := database.DB.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		return c.Status(fiber.StatusCreated).JSON(newProductoResponse(&producto))
	}
}

// ListProductosHandler - GET /api/inventario?sucursalId=&bajoMinimo=
func ListProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.ProductoInventario{}).Order("nombre")

		if sucursalID := c.QueryInt("sucursalId"); sucursalID > 0 {
			query = query.Where("sucursal_id = ?", sucursalID)
		}
		if c.Query("bajoMinimo") == "true" {
			query = query.Where("stock < stock_minimo")
		}

		var productos []models.ProductoInventario
		if err := query.Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el inventario")
		}

		res := make([]ProductoResponse, 0, len(productos))
		for i := range productos {
			res = append(res, newProductoResponse(&productos[i]))
		}

		return c.JSON(res)
	}
}

func UpdateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.ProductoInventario
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body UpdateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			producto.Nombre = nombre
		}
		if body.SKU != nil {
			producto.SKU = strings.TrimSpace(*body.SKU)
		}
		if body.Unidad != nil {
			unidad := strings.TrimSpace(*body.Unidad)
			if unidad == "" {
				return fiber.NewError(fiber.StatusBadRequest, "La unidad no puede quedar vacía")
			}
			producto.Unidad = unidad
		}
		if body.StockMinimo != nil {
			producto.StockMinimo = *body.StockMinimo
		}
		if body.Costo != nil {
			producto.Costo = *body.Costo
		}
		if body.Precio != nil {
			producto.Precio = *body.Precio
		}

		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		return c.JSON(newProductoResponse(&producto))
	}
}

// AjustarStockHandler - POST /api/inventario/:id/ajuste
// El stock nunca se edita directo: siempre entra o sale una cantidad.
func AjustarStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.ProductoInventario
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body AjusteStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Cantidad == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La cantidad no puede ser cero")
		}
		if producto.Stock+body.Cantidad < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El ajuste dejaría el stock en negativo")
		}

		producto.Stock += body.Cantidad
		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo ajustar el stock")
		}

		return c.JSON(newProductoResponse(&producto))
	}
}

func DeleteProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.ProductoInventario
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		if err := database.DB.Delete(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
