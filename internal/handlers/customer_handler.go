package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/validators"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// --------- Requests ---------

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	AgeGroup string `json:"age_group"`
	Email    string `json:"email"`
	Region   string `json:"region"`
	Memo     string `json:"memo"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Gender   *string `json:"gender"`
	Phone    *string `json:"phone"`
	AgeGroup *string `json:"age_group"`
	Email    *string `json:"email"`
	Region   *string `json:"region"`
	Memo     *string `json:"memo"`
}

// --------- Handlers ---------

func (h *CustomerHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	query := h.db.Where("company_id = ?", companyID)
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "internal_error", "고객 목록 조회에 실패했습니다")
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var customer models.Customer
	if err := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "존재하지 않는 고객입니다")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}
	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "이메일 형식이 올바르지 않습니다")
		return
	}

	customer := models.Customer{
		CompanyID: companyID,
		Name:      req.Name,
		Gender:    req.Gender,
		Phone:     req.Phone,
		AgeGroup:  req.AgeGroup,
		Email:     req.Email,
		Region:    req.Region,
		Memo:      req.Memo,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "고객 등록에 실패했습니다")
		return
	}

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var customer models.Customer
	if err := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "존재하지 않는 고객입니다")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}
	if req.Email != nil && *req.Email != "" && !validators.IsValidEmail(*req.Email) {
		httperr.BadRequest(c, "invalid_email", "이메일 형식이 올바르지 않습니다")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.AgeGroup != nil {
		updates["age_group"] = *req.AgeGroup
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}

	if len(updates) > 0 {
		if err := h.db.Model(&customer).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_customer", "고객 수정에 실패했습니다")
			return
		}
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var count int64
	if err := h.db.Model(&models.Contract{}).
		Where("customer_id = ?", c.Param("id")).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "고객 삭제에 실패했습니다")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "customer_has_contracts", "계약이 있는 고객은 삭제할 수 없습니다")
		return
	}

	result := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		Delete(&models.Customer{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_customer", "고객 삭제에 실패했습니다")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "customer_not_found", "존재하지 않는 고객입니다")
		return
	}

	httpresp.OK(c, gin.H{"message": "고객 삭제 성공"})
}
