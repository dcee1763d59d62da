package audit

import (
	"luna27-backend/internal/database"
	"luna27-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	SucursalID  *uint              `json:"sucursalId"`
	UsuarioID   uint               `json:"usuarioId"`
	Usuario     string             `json:"usuario"`
	EntityType  string             `json:"entityType"`
	EntityID    uint               `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"beforeData"`
	AfterData   string             `json:"afterData"`
	CreatedAt   string             `json:"createdAt"`
}

// ListAuditLogsHandler - GET /api/audit-logs?entityType=&limit=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.AuditLog{}).Order("created_at DESC")

		if entityType := c.Query("entityType"); entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := query.Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros de auditoría")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				SucursalID:  l.SucursalID,
				UsuarioID:   l.UsuarioID,
				Usuario:     l.Usuario,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
