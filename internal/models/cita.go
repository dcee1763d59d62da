package models

import (
	"time"

	"gorm.io/gorm"
)

type EstadoCita string

const (
	CitaPendiente  EstadoCita = "pendiente"
	CitaConfirmada EstadoCita = "confirmada"
	CitaCompletada EstadoCita = "completada"
	CitaCancelada  EstadoCita = "cancelada"
	CitaNoAsistio  EstadoCita = "no_asistio"
)

type Cita struct {
	ID         uint `gorm:"primaryKey"`
	SucursalID uint `gorm:"index;not null"`
	Sucursal   Sucursal
	ClienteID  uint `gorm:"index;not null"`
	Cliente    Cliente
	EmpleadoID uint `gorm:"index;not null"`
	Empleado   Empleado
	ServicioID uint `gorm:"index;not null"`
	Servicio   Servicio
	FechaHora  time.Time  `gorm:"index;not null"`
	Estado     EstadoCita `gorm:"size:20;not null;default:pendiente"`
	Notas      string     `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
