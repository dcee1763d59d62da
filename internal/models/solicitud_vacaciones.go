package models

import (
	"time"

	"gorm.io/gorm"
)

type EstadoSolicitud string

const (
	SolicitudPendiente EstadoSolicitud = "pendiente"
	SolicitudAprobada  EstadoSolicitud = "aprobada"
	SolicitudRechazada EstadoSolicitud = "rechazada"
)

type SolicitudVacaciones struct {
	ID          uint `gorm:"primaryKey"`
	EmpleadoID  uint `gorm:"index;not null"`
	Empleado    Empleado
	UsuarioID   uint            `gorm:"index;not null"` // quién la registró
	Inicio      time.Time       `gorm:"not null"`
	Fin         time.Time       `gorm:"not null"`
	Motivo      string          `gorm:"size:255"`
	Estado      EstadoSolicitud `gorm:"size:20;not null;default:pendiente"`
	ResueltaPor *uint           // usuario manager/admin que aprobó o rechazó
	ResueltaEn  *time.Time
	Comentario  string `gorm:"size:255"` // comentario del que resuelve
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
