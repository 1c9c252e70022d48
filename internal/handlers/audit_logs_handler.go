package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AuditReader is satisfied by audit.Logger.
type AuditReader interface {
	List(ctx context.Context, action string, limit, offset int) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	reader AuditReader
}

func NewAuditLogsHandler(reader AuditReader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	logs, total, err := h.reader.List(c.Request.Context(), action, limit, offset)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
