package handlers

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/imaging"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/storage"
)

type CarHandler struct {
	db       *gorm.DB
	uploader *storage.S3Uploader
}

func NewCarHandler(db *gorm.DB, uploader *storage.S3Uploader) *CarHandler {
	return &CarHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateCarRequest struct {
	ModelID           uint   `json:"model_id" binding:"required"`
	CarNumber         string `json:"car_number" binding:"required"`
	ManufacturingYear int    `json:"manufacturing_year"`
	Mileage           int    `json:"mileage"`
	Price             int    `json:"price" binding:"required,gt=0"`
	Accident          bool   `json:"accident"`
	Explanation       string `json:"explanation"`
}

type UpdateCarRequest struct {
	ModelID           *uint   `json:"model_id"`
	CarNumber         *string `json:"car_number"`
	ManufacturingYear *int    `json:"manufacturing_year"`
	Mileage           *int    `json:"mileage"`
	Price             *int    `json:"price"`
	Accident          *bool   `json:"accident"`
	Explanation       *string `json:"explanation"`
}

// --------- Handlers ---------

func (h *CarHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	query := h.db.Preload("Model").Where("company_id = ?", companyID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.
			Joins("JOIN car_models ON car_models.id = cars.model_id").
			Where("car_models.model LIKE ? OR cars.car_number LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	var cars []models.Car
	if err := query.Order("cars.created_at DESC").Find(&cars).Error; err != nil {
		httperr.Internal(c, "internal_error", "차량 목록 조회에 실패했습니다")
		return
	}

	httpresp.List(c, cars)
}

func (h *CarHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var car models.Car
	if err := h.db.Preload("Model").
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "존재하지 않는 자동차입니다")
		return
	}

	httpresp.OK(c, car)
}

func (h *CarHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}

	var model models.CarModel
	if err := h.db.First(&model, req.ModelID).Error; err != nil {
		httperr.BadRequest(c, "car_model_not_found", "존재하지 않는 차종입니다")
		return
	}

	car := models.Car{
		CompanyID:         companyID,
		ModelID:           req.ModelID,
		CarNumber:         req.CarNumber,
		ManufacturingYear: req.ManufacturingYear,
		Mileage:           req.Mileage,
		Price:             req.Price,
		Status:            string(domain.CarStatusPossession),
		Accident:          req.Accident,
		Explanation:       req.Explanation,
	}

	if err := h.db.Create(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_create_car", "차량 등록에 실패했습니다")
		return
	}

	car.Model = model
	httpresp.Created(c, car)
}

func (h *CarHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var car models.Car
	if err := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "존재하지 않는 자동차입니다")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
		return
	}

	updates := map[string]any{}
	if req.ModelID != nil {
		updates["model_id"] = *req.ModelID
	}
	if req.CarNumber != nil {
		updates["car_number"] = *req.CarNumber
	}
	if req.ManufacturingYear != nil {
		updates["manufacturing_year"] = *req.ManufacturingYear
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Accident != nil {
		updates["accident"] = *req.Accident
	}
	if req.Explanation != nil {
		updates["explanation"] = *req.Explanation
	}

	if len(updates) > 0 {
		if err := h.db.Model(&car).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_car", "차량 수정에 실패했습니다")
			return
		}
	}

	if err := h.db.Preload("Model").First(&car, car.ID).Error; err != nil {
		httperr.Internal(c, "internal_error", "차량 조회에 실패했습니다")
		return
	}

	httpresp.OK(c, car)
}

func (h *CarHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	result := h.db.Where("id = ? AND company_id = ? AND status = ?",
		c.Param("id"), companyID, string(domain.CarStatusPossession)).
		Delete(&models.Car{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_car", "차량 삭제에 실패했습니다")
		return
	}
	if result.RowsAffected == 0 {
		httperr.BadRequest(c, "car_not_deletable", "보유 상태의 차량만 삭제할 수 있습니다")
		return
	}

	httpresp.OK(c, gin.H{"message": "차량 삭제 성공"})
}

// ListModels backs the model picker when registering a car.
func (h *CarHandler) ListModels(c *gin.Context) {
	var carModels []models.CarModel
	if err := h.db.Order("manufacturer ASC, model ASC").Find(&carModels).Error; err != nil {
		httperr.Internal(c, "internal_error", "차종 목록 조회에 실패했습니다")
		return
	}

	httpresp.List(c, carModels)
}

// --------- CSV bulk import ---------

// ImportCSV expects rows of: car_number, manufacturer, model,
// manufacturing_year, mileage, price. A header row is skipped when the
// year column does not parse.
func (h *CarHandler) ImportCSV(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "CSV 파일이 필요합니다")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6

	imported := 0
	skipped := 0
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			httperr.BadRequest(c, "invalid_csv", "CSV 형식이 올바르지 않습니다")
			return
		}
		line++

		year, yearErr := strconv.Atoi(record[3])
		if yearErr != nil {
			if line == 1 {
				continue // header row
			}
			skipped++
			continue
		}

		mileage, _ := strconv.Atoi(record[4])
		price, priceErr := strconv.Atoi(record[5])
		if priceErr != nil || price <= 0 {
			skipped++
			continue
		}

		var model models.CarModel
		if err := h.db.Where("manufacturer = ? AND model = ?", record[1], record[2]).
			First(&model).Error; err != nil {
			skipped++
			continue
		}

		car := models.Car{
			CompanyID:         companyID,
			ModelID:           model.ID,
			CarNumber:         record[0],
			ManufacturingYear: year,
			Mileage:           mileage,
			Price:             price,
			Status:            string(domain.CarStatusPossession),
		}
		if err := h.db.Create(&car).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}

	httpresp.OK(c, gin.H{"imported": imported, "skipped": skipped})
}

// --------- Image upload ---------

func (h *CarHandler) UploadImage(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var car models.Car
	if err := h.db.Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "존재하지 않는 자동차입니다")
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
		"cars",
		header.Filename+".webp",
		"image/webp",
		converted,
	)
	if err != nil {
		httperr.Internal(c, "upload_failed", "이미지 업로드에 실패했습니다")
		return
	}

	if err := h.db.Model(&car).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_car", "차량 수정에 실패했습니다")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}
