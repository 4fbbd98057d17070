package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler reads the audit table directly. It is only mounted when
// the service runs on Postgres.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditFilter struct {
	action   string
	entity   string
	entityID *uint64
	userID   *uint64
	from     *time.Time
	to       *time.Time
	page     int
	limit    int
}

// Malformed optional filters are ignored rather than rejected.
func parseAuditFilter(c *gin.Context) auditFilter {
	f := auditFilter{
		action: c.Query("action"),
		entity: c.Query("entity"),
		page:   1,
		limit:  auditDefaultLimit,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		f.page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= auditMaxLimit {
		f.limit = l
	}

	if v, err := strconv.ParseUint(c.Query("entity_id"), 10, 64); err == nil {
		f.entityID = &v
	}
	if v, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		f.userID = &v
	}

	if d, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
		f.from = &d
	}
	if d, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
		end := d.AddDate(0, 0, 1)
		f.to = &end
	}

	return f
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if f.action != "" {
		q = q.Where("action = ?", f.action)
	}
	if f.entity != "" {
		q = q.Where("entity = ?", f.entity)
	}
	if f.entityID != nil {
		q = q.Where("entity_id = ?", *f.entityID)
	}
	if f.userID != nil {
		q = q.Where("user_id = ?", *f.userID)
	}
	if f.from != nil {
		q = q.Where("created_at >= ?", *f.from)
	}
	if f.to != nil {
		q = q.Where("created_at < ?", *f.to)
	}
	return q
}

// List returns a page of audit entries, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := parseAuditFilter(c)

	q := f.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	logs := make([]models.AuditLog, 0, f.limit)
	if err := q.
		Order("created_at DESC").
		Limit(f.limit).
		Offset((f.page - 1) * f.limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.OK(c, gin.H{
		"page":  f.page,
		"limit": f.limit,
		"total": total,
		"logs":  logs,
	})
}
