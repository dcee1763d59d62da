package models

import "time"

type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionTransition AuditAction = "transition" // cambios de estado (cita, tarjeta, solicitud)
)

type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	SucursalID  *uint       `gorm:"index"`
	UsuarioID   uint        `gorm:"index;not null"`
	Usuario     string      `gorm:"size:100;not null"` // nombre al momento de la acción
	EntityType  string      `gorm:"size:50;index;not null"`
	EntityID    uint        `gorm:"index;not null"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:jsonb;default:'null'"`
	AfterData   string      `gorm:"type:jsonb;default:'null'"`
	CreatedAt   time.Time   `gorm:"index"`
}
