package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/storage"
)

const maxDocumentSize = 20 << 20 // 20 MB

type DocumentHandler struct {
	db       *gorm.DB
	uploader *storage.S3Uploader
	audit    *audit.Dispatcher
}

func NewDocumentHandler(db *gorm.DB, uploader *storage.S3Uploader, auditDispatcher *audit.Dispatcher) *DocumentHandler {
	return &DocumentHandler{db: db, uploader: uploader, audit: auditDispatcher}
}

// Upload stores the file first; linking it to a contract happens later
// through the contract update endpoint.
func (h *DocumentHandler) Upload(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "파일이 필요합니다")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		httperr.BadRequest(c, "file_too_large", "파일 크기는 20MB를 초과할 수 없습니다")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "read_failed", "파일을 읽지 못했습니다")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploader.Upload(c.Request.Context(), "documents", header.Filename, contentType, raw)
	if err != nil {
		httperr.Internal(c, "upload_failed", "문서 업로드에 실패했습니다")
		return
	}

	doc := models.ContractDocument{
		CompanyID: companyID,
		FileName:  header.Filename,
		FileURL:   url,
		FileSize:  header.Size,
	}
	if err := h.db.Create(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_document", "문서 등록에 실패했습니다")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "document_uploaded",
		Entity:    "contract_document",
		EntityID:  &doc.ID,
		Metadata:  map[string]string{"file_name": doc.FileName},
	})

	httpresp.Created(c, doc)
}

// List supports file name search plus page/limit pagination.
func (h *DocumentHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&models.ContractDocument{}).Where("company_id = ?", companyID)
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("file_name LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Internal(c, "internal_error", "문서 목록 조회에 실패했습니다")
		return
	}

	var docs []models.ContractDocument
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&docs).Error; err != nil {
		httperr.Internal(c, "internal_error", "문서 목록 조회에 실패했습니다")
		return
	}

	httpresp.OK(c, gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  docs,
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var doc models.ContractDocument
	if err := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&doc).Error; err != nil {
		httperr.NotFound(c, "document_not_found", "계약 문서를 찾을 수 없습니다")
		return
	}
	if doc.ContractID != nil {
		httperr.BadRequest(c, "document_linked", "계약에 연결된 문서는 삭제할 수 없습니다")
		return
	}

	if err := h.db.Delete(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_document", "문서 삭제에 실패했습니다")
		return
	}

	httpresp.OK(c, gin.H{"message": "문서 삭제 성공"})
}
