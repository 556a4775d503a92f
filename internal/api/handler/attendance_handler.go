package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkAttendance 批量点名（同一课程+日期重复提交时覆盖更新）
// POST /api/v1/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.Mark(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAttendance 获取考勤记录列表
// GET /api/v1/attendance
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, total, err := h.attendanceSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKPage(c, records, total, req.GetPage(), req.GetPageSize())
}

// AttendanceSummary 获取考勤统计（按学生聚合出勤率）
// GET /api/v1/attendance/summary
func (h *AttendanceHandler) AttendanceSummary(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.AttendanceSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	summary, err := h.attendanceSvc.Summary(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, summary)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceNotOwnLesson):
		response.Forbidden(c, 33001, "教师只能为自己的课程点名")
	case errors.Is(err, service.ErrStudentNotInLesson):
		response.BadRequest(c, 33002, "学生不属于该课程的班级")
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 32001, "课程安排不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 30001, "班级不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
