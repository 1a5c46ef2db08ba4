package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harmoniahq/practice-api/internal/httperr"
	"github.com/harmoniahq/practice-api/internal/httpresp"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/models"
	"github.com/harmoniahq/practice-api/internal/services"
)

type AuditLogHandler struct {
	svc *services.AuditLogService
}

func NewAuditLogHandler(svc *services.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{svc: svc}
}

type auditListResponse struct {
	Data  []models.AuditLog `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (h *AuditLogHandler) List(c *gin.Context) {
	filter := services.AuditLogFilter{
		Action:     queryString(c, "action"),
		EntityType: queryString(c, "entity_type"),
		EntityID:   queryUint(c, "entity_id"),
		UserID:     queryUint(c, "user_id"),
		From:       queryTime(c, "from"),
		To:         queryTime(c, "to"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 50),
	}

	logs, total, err := h.svc.List(middleware.CurrentUser(c).TenantID, filter)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, auditListResponse{
		Data:  logs,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func (h *AuditLogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.svc.Get(middleware.CurrentUser(c).TenantID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, entry)
}
