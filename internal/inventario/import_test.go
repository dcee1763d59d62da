package inventario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductoDesdeFilaCompleta(t *testing.T) {
	fila := []string{"Aceite de almendras", "ACE-01", "ml", "120", "30", "2.5", "5.0"}

	producto, err := productoDesdeFila(fila, 2)
	require.NoError(t, err)

	assert.Equal(t, uint(2), producto.SucursalID)
	assert.Equal(t, "Aceite de almendras", producto.Nombre)
	assert.Equal(t, "ACE-01", producto.SKU)
	assert.Equal(t, "ml", producto.Unidad)
	assert.Equal(t, 120, producto.Stock)
	assert.Equal(t, 30, producto.StockMinimo)
	assert.Equal(t, 2.5, producto.Costo)
	assert.Equal(t, 5.0, producto.Precio)
}

func TestProductoDesdeFilaCorta(t *testing.T) {
	producto, err := productoDesdeFila([]string{"Toallas"}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Toallas", producto.Nombre)
	assert.Equal(t, "pieza", producto.Unidad, "la unidad vacía cae al valor por defecto")
	assert.Zero(t, producto.Stock)
}

func TestProductoDesdeFilaInvalida(t *testing.T) {
	casos := [][]string{
		{"Crema", "", "pieza", "no-es-numero"},
		{"Crema", "", "pieza", "-5"},
		{"Crema", "", "pieza", "10", "abc"},
		{"Crema", "", "pieza", "10", "2", "-1"},
		{"Crema", "", "pieza", "10", "2", "3", "precio"},
	}

	for i, fila := range casos {
		_, err := productoDesdeFila(fila, 1)
		assert.Errorf(t, err, "caso %d debería rechazarse", i)
	}
}
