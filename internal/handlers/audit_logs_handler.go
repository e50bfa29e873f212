package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	query := h.db.Model(&models.AuditLog{}).Where("company_id = ?", companyID)
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Internal(c, "internal_error", "감사 로그 조회에 실패했습니다")
		return
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "감사 로그 조회에 실패했습니다")
		return
	}

	httpresp.OK(c, gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  logs,
	})
}
