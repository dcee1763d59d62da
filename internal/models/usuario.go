package models

import "time"

type Rol string

const (
	RolAdmin   Rol = "admin"
	RolManager Rol = "manager"
	RolStaff   Rol = "staff"
)

// Nivel devuelve el rango del rol dentro del orden total admin > manager > staff.
// Un rol desconocido vale 0 y no pasa ninguna verificación.
func (r Rol) Nivel() int {
	switch r {
	case RolAdmin:
		return 3
	case RolManager:
		return 2
	case RolStaff:
		return 1
	default:
		return 0
	}
}

// Usuario es el perfil local de una cuenta. Las credenciales viven en el
// proveedor de identidad externo; aquí solo se guarda rol, sucursal y estado.
// Nunca se borra físicamente: se desactiva con Activo=false.
type Usuario struct {
	ID         uint    `gorm:"primaryKey"`
	ProviderID string  `gorm:"size:64;uniqueIndex;not null"` // id de la cuenta en el proveedor
	Email      string  `gorm:"size:100;uniqueIndex;not null"`
	Nombre     string  `gorm:"size:100;not null"`
	Rol        Rol     `gorm:"size:20;not null"`
	SucursalID *uint
	Sucursal   *Sucursal
	Activo     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
