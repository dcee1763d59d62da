package models

import (
	"time"

	"gorm.io/gorm"
)

type MetodoPago string

const (
	PagoEfectivo MetodoPago = "efectivo"
	PagoTarjeta  MetodoPago = "tarjeta"
	PagoRegalo   MetodoPago = "tarjeta_regalo"
	PagoTransfer MetodoPago = "transferencia"
)

type EstadoPago string

const (
	PagoRegistrado EstadoPago = "registrado"
	PagoAnulado    EstadoPago = "anulado"
)

type Pago struct {
	ID               uint `gorm:"primaryKey"`
	SucursalID       uint `gorm:"index;not null"`
	Sucursal         Sucursal
	CitaID           *uint `gorm:"index"`
	Cita             *Cita
	TarjetaRegaloID  *uint `gorm:"index"` // cuando el método es tarjeta_regalo
	TarjetaRegalo    *TarjetaRegalo
	Monto            float64    `gorm:"not null"`
	Metodo           MetodoPago `gorm:"size:20;not null"`
	Estado           EstadoPago `gorm:"size:20;not null;default:registrado"`
	Fecha            time.Time  `gorm:"index;not null"`
	Concepto         string     `gorm:"size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
