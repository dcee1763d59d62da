package models

import (
	"time"

	"gorm.io/gorm"
)

type EstadoTarjeta string

const (
	TarjetaPendiente EstadoTarjeta = "pendiente" // emitida pero aún sin pagar
	TarjetaActiva    EstadoTarjeta = "activa"
	TarjetaAgotada   EstadoTarjeta = "agotada"
	TarjetaCancelada EstadoTarjeta = "cancelada"
	TarjetaVencida   EstadoTarjeta = "vencida"
)

type TarjetaRegalo struct {
	ID           uint   `gorm:"primaryKey"`
	SucursalID   uint   `gorm:"index;not null"`
	Sucursal     Sucursal
	Codigo       string `gorm:"size:64;uniqueIndex;not null"` // UUID impreso en la tarjeta
	PinHash      string `gorm:"size:255"` // opcional; requerido al redimir si existe
	ClienteID    *uint  `gorm:"index"`
	Cliente      *Cliente
	MontoInicial float64       `gorm:"not null"`
	Saldo        float64       `gorm:"not null"`
	Estado       EstadoTarjeta `gorm:"size:20;not null;default:pendiente"`
	Vencimiento  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
