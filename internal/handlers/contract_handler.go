package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	ucContract "github.com/autoline-kr/dealer-backoffice/internal/usecase/contract"
)

// ======================================================
// HANDLER
// ======================================================

type ContractHandler struct {
	createUC       *ucContract.CreateContract
	updateUC       *ucContract.UpdateContract
	updateStatusUC *ucContract.UpdateContractStatus
	deleteUC       *ucContract.DeleteContract
	listUC         *ucContract.ListContracts
}

func NewContractHandler(
	createUC *ucContract.CreateContract,
	updateUC *ucContract.UpdateContract,
	updateStatusUC *ucContract.UpdateContractStatus,
	deleteUC *ucContract.DeleteContract,
	listUC *ucContract.ListContracts,
) *ContractHandler {
	return &ContractHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
		listUC:         listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type MeetingRequest struct {
	Date   string   `json:"date" binding:"required"`
	Alarms []string `json:"alarms"`
}

type CreateContractRequest struct {
	CarID      uint             `json:"carId" binding:"required"`
	CustomerID uint             `json:"customerId" binding:"required"`
	Meetings   []MeetingRequest `json:"meetings"`
}

type DocumentRefRequest struct {
	ID uint `json:"id" binding:"required"`
}

type UpdateContractRequest struct {
	Status         *string               `json:"status"`
	ResolutionDate domain.ResolutionDate `json:"resolutionDate"`
	ContractPrice  *int                  `json:"contractPrice"`
	UserID         *uint                 `json:"userId"`
	CustomerID     *uint                 `json:"customerId"`
	CarID          *uint                 `json:"carId"`

	// nil means untouched; an empty array means "remove them all".
	Meetings          *[]MeetingRequest     `json:"meetings"`
	ContractDocuments *[]DocumentRefRequest `json:"contractDocuments"`
}

// isStatusOnly decides the update variant once, here at the boundary:
// a payload carrying status (plus optionally resolutionDate) and
// nothing else takes the narrow path that leaves meetings and derived
// fields alone.
func (r UpdateContractRequest) isStatusOnly() bool {
	return r.Status != nil &&
		r.ContractPrice == nil &&
		r.UserID == nil &&
		r.CustomerID == nil &&
		r.CarID == nil &&
		r.Meetings == nil &&
		r.ContractDocuments == nil
}

func parseMeetings(requests []MeetingRequest) ([]domain.MeetingInput, error) {
	meetings := make([]domain.MeetingInput, 0, len(requests))
	for _, req := range requests {
		date, err := domain.ParseMeetingDate(req.Date)
		if err != nil {
			return nil, err
		}

		alarms := make([]time.Time, 0, len(req.Alarms))
		for _, raw := range req.Alarms {
			alarmTime, err := domain.ParseAlarmTime(raw)
			if err != nil {
				return nil, err
			}
			alarms = append(alarms, alarmTime)
		}

		meetings = append(meetings, domain.MeetingInput{
			Date:   date,
			Alarms: alarms,
		})
	}
	return meetings, nil
}

func bindError(c *gin.Context, err error) {
	var ve httperr.ValidationError
	if errors.As(err, &ve) {
		httperr.BadRequest(c, ve.Code, ve.Message)
		return
	}
	httperr.BadRequest(c, "invalid_request", "잘못된 요청입니다")
}

func contractIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_contract_id", "잘못된 요청입니다")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *ContractHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	meetings, err := parseMeetings(req.Meetings)
	if err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucContract.CreateContractInput{
		CarID:      req.CarID,
		CustomerID: req.CustomerID,
		Meetings:   meetings,
	}, userID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ContractHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	contractID, ok := contractIDParam(c)
	if !ok {
		return
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var status *domain.Status
	if req.Status != nil {
		parsed, err := domain.ParseStatus(*req.Status)
		if err != nil {
			httperr.BadRequest(c, "invalid_status", err.Error())
			return
		}
		status = &parsed
	}

	if req.isStatusOnly() {
		result, err := h.updateStatusUC.Execute(c.Request.Context(), contractID, ucContract.StatusUpdateInput{
			Status:         *status,
			ResolutionDate: req.ResolutionDate,
		}, userID)
		if err != nil {
			httperr.WriteError(c, err)
			return
		}
		httpresp.OK(c, result)
		return
	}

	input := ucContract.UpdateContractInput{
		Status:         status,
		ResolutionDate: req.ResolutionDate,
		ContractPrice:  req.ContractPrice,
		UserID:         req.UserID,
		CustomerID:     req.CustomerID,
		CarID:          req.CarID,
	}

	if req.Meetings != nil {
		meetings, err := parseMeetings(*req.Meetings)
		if err != nil {
			bindError(c, err)
			return
		}
		input.Meetings = &meetings
	}

	if req.ContractDocuments != nil {
		ids := make([]uint, 0, len(*req.ContractDocuments))
		for _, ref := range *req.ContractDocuments {
			ids = append(ids, ref.ID)
		}
		input.DocumentIDs = &ids
	}

	result, err := h.updateUC.Execute(c.Request.Context(), contractID, input, userID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// LIST (grouped by status)
// ======================================================

func (h *ContractHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	searchBy := domain.SearchField(c.Query("searchBy"))
	keyword := c.Query("keyword")

	if searchBy != "" &&
		searchBy != domain.SearchByCustomerName &&
		searchBy != domain.SearchByUserName {
		httperr.BadRequest(c, "invalid_search_by", "잘못된 요청입니다")
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), companyID, searchBy, keyword)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// DELETE
// ======================================================

func (h *ContractHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	contractID, ok := contractIDParam(c)
	if !ok {
		return
	}

	result, err := h.deleteUC.Execute(c.Request.Context(), contractID, userID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, result)
}
