package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Dashboard 获取仪表盘统计数据（按角色范围聚合）
// GET /api/v1/stats
func (h *StatsHandler) Dashboard(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	stats, err := h.statsSvc.Dashboard(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}
