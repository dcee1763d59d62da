package inventario

import (
	"log"
	"strconv"
	"strings"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ImportResult struct {
	Importados int      `json:"importados"`
	Omitidos   int      `json:"omitidos"`
	Errores    []string `json:"errores"`
}

// ImportarProductosHandler - POST /api/inventario/importar
//
// Importa un .xlsx con columnas: nombre | sku | unidad | stock | stock mínimo
// | costo | precio. Las filas inválidas se omiten y se reportan, no abortan
// la importación.
func ImportarProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sucursalID := c.QueryInt("sucursalId")
		if sucursalID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El parámetro sucursalId es obligatorio")
		}

		var sucursal models.Sucursal
		if err := database.DB.First(&sucursal, sucursalID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La sucursal indicada no existe")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se recibió el archivo: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se aceptan archivos .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo abrir el archivo: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer el Excel: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El Excel no tiene hojas")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer la hoja: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El Excel está vacío")
		}

		// Detectar fila de encabezado por la primera celda
		startIndex := 0
		if len(rows[0]) > 0 {
			primera := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(primera, "NOMBRE") || strings.Contains(primera, "PRODUCTO") {
				startIndex = 1
			}
		}

		result := ImportResult{Errores: make([]string, 0)}

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}

			producto, err := productoDesdeFila(row, uint(sucursalID))
			if err != nil {
				result.Omitidos++
				result.Errores = append(result.Errores, "fila "+strconv.Itoa(i+1)+": "+err.Error())
				continue
			}

			if err := database.DB.Create(producto).Error; err != nil {
				log.Printf("Fila %d no importada: %v", i+1, err)
				result.Omitidos++
				result.Errores = append(result.Errores, "fila "+strconv.Itoa(i+1)+": no se pudo guardar")
				continue
			}
			result.Importados++
		}

		return c.JSON(result)
	}
}

func productoDesdeFila(row []string, sucursalID uint) (*models.ProductoInventario, error) {
	celda := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	nombre := celda(0)
	unidad := celda(2)
	if unidad == "" {
		unidad = "pieza"
	}

	producto := &models.ProductoInventario{
		SucursalID: sucursalID,
		Nombre:     nombre,
		SKU:        celda(1),
		Unidad:     unidad,
	}

	if v := celda(3); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return nil, errFila("stock inválido")
		}
		producto.Stock = stock
	}
	if v := celda(4); v != "" {
		minimo, err := strconv.Atoi(v)
		if err != nil || minimo < 0 {
			return nil, errFila("stock mínimo inválido")
		}
		producto.StockMinimo = minimo
	}
	if v := celda(5); v != "" {
		costo, err := strconv.ParseFloat(v, 64)
		if err != nil || costo < 0 {
			return nil, errFila("costo inválido")
		}
		producto.Costo = costo
	}
	if v := celda(6); v != "" {
		precio, err := strconv.ParseFloat(v, 64)
		if err != nil || precio < 0 {
			return nil, errFila("precio inválido")
		}
		producto.Precio = precio
	}

	return producto, nil
}

type errFila string

func (e errFila) Error() string { return string(e) }
