package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/autoline-kr/dealer-backoffice/internal/dashboard"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/httpresp"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	resp, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "대시보드 조회에 실패했습니다")
		return
	}

	httpresp.OK(c, resp)
}
