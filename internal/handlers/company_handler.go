package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type UpdateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CompanyHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "존재하지 않는 회사입니다")
		return
	}

	httpresp.OK(c, company)
}

// Update renames the company. The code is the login/tenant key and
// stays immutable after registration.
func (h *CompanyHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "존재하지 않는 회사입니다")
		return
	}

	if err := h.db.Model(&company).Update("name", req.Name).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "회사 수정에 실패했습니다")
		return
	}

	httpresp.OK(c, company)
}
