package models

import (
	"time"

	"gorm.io/gorm"
)

type Promocion struct {
	ID           uint   `gorm:"primaryKey"`
	SucursalID   *uint  `gorm:"index"` // nil = aplica a todas las sucursales
	Sucursal     *Sucursal
	Nombre       string    `gorm:"size:100;not null"`
	Descripcion  string    `gorm:"size:255"`
	DescuentoPct float64   `gorm:"not null"` // porcentaje 0-100
	Inicio       time.Time `gorm:"not null"`
	Fin          time.Time `gorm:"not null"`
	Activa       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
