package models

import (
	"time"

	"gorm.io/gorm"
)

type Servicio struct {
	ID          uint    `gorm:"primaryKey"`
	Nombre      string  `gorm:"size:100;not null;unique"`
	Descripcion string  `gorm:"size:255"`
	DuracionMin int     `gorm:"not null"` // duración en minutos
	Precio      float64 `gorm:"not null"`
	Categoria   string  `gorm:"size:50;index"` // corte, spa, uñas...
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
