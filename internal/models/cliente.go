package models

import (
	"time"

	"gorm.io/gorm"
)

type Cliente struct {
	ID              uint   `gorm:"primaryKey"`
	SucursalID      *uint  `gorm:"index"`
	Sucursal        *Sucursal
	Nombre          string `gorm:"size:100;not null"`
	Telefono        string `gorm:"size:50;index"`
	Email           string `gorm:"size:100"`
	FechaNacimiento *time.Time
	Notas           string `gorm:"size:500"` // alergias, preferencias, etc.
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
