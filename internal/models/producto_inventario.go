package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductoInventario struct {
	ID          uint   `gorm:"primaryKey"`
	SucursalID  uint   `gorm:"index;not null"`
	Sucursal    Sucursal
	Nombre      string `gorm:"size:100;not null"`
	SKU         string `gorm:"size:50;index"` // código interno o del proveedor
	Unidad      string `gorm:"size:20;not null"` // pieza, ml, caja...
	Stock       int    `gorm:"not null;default:0"`
	StockMinimo int    `gorm:"not null;default:0"` // umbral para reposición
	Costo       float64
	Precio      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
