package audit

import (
	"encoding/json"
	"fmt"

	"luna27-backend/internal/database"
	"luna27-backend/internal/models"
)

type LogOptions struct {
	SucursalID  *uint
	UsuarioID   uint
	Usuario     string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog registra la acción con snapshots antes/después en jsonb. Un fallo
// al escribir el log no debe tumbar la operación principal: los llamadores
// solo loguean el error.
func WriteLog(opts LogOptions) error {
	// jsonb no acepta cadena vacía, el valor neutro es el JSON "null"
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		SucursalID:  opts.SucursalID,
		UsuarioID:   opts.UsuarioID,
		Usuario:     opts.Usuario,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de auditoría: %w", err)
	}

	return nil
}
