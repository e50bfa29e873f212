package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/imaging"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/storage"
)

type UserHandler struct {
	db       *gorm.DB
	uploader *storage.S3Uploader
}

func NewUserHandler(db *gorm.DB, uploader *storage.S3Uploader) *UserHandler {
	return &UserHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type UpdateMeRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	EmployeeNo *string `json:"employee_no"`
	Password   *string `json:"password"`
}

// --------- Handlers ---------

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Company").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "존재하지 않는 담당자입니다")
		return
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "존재하지 않는 담당자입니다")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.EmployeeNo != nil {
		updates["employee_no"] = *req.EmployeeNo
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			httperr.BadRequest(c, "weak_password", "비밀번호는 8자 이상이어야 합니다")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "internal_error", "비밀번호 변경에 실패했습니다")
			return
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "담당자 수정에 실패했습니다")
			return
		}
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "존재하지 않는 담당자입니다")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "이미지 파일이 필요합니다")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "read_failed", "파일을 읽지 못했습니다")
		return
	}

	converted, err := imaging.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "지원하지 않는 이미지 형식입니다")
		return
	}

	url, err := h.uploader.Upload(
		c.Request.Context(),
		"profiles",
		header.Filename+".webp",
		"image/webp",
		converted,
	)
	if err != nil {
		httperr.Internal(c, "upload_failed", "이미지 업로드에 실패했습니다")
		return
	}

	if err := h.db.Model(&user).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "담당자 수정에 실패했습니다")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}

// List returns every salesperson of the caller's company, for the
// contract assignee picker.
func (h *UserHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var users []models.User
	if err := h.db.Where("company_id = ?", companyID).
		Order("name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "internal_error", "담당자 목록 조회에 실패했습니다")
		return
	}

	httpresp.List(c, users)
}
