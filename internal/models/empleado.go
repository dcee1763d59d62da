package models

import (
	"time"

	"gorm.io/gorm"
)

type Empleado struct {
	ID         uint `gorm:"primaryKey"`
	SucursalID uint `gorm:"index;not null"`
	Sucursal   Sucursal
	UsuarioID  *uint `gorm:"index"` // cuenta de acceso, si el empleado tiene una
	Usuario    *Usuario
	Nombre     string `gorm:"size:100;not null"`
	Puesto     string `gorm:"size:100"` // estilista, masajista, recepción...
	Telefono   string `gorm:"size:50"`
	Activo     bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
