package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudents 导出学生花名册
// GET /api/v1/export/students?school_id=xxx&class_id=xxx
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	schoolID := c.Query("school_id")
	classID := c.Query("class_id")

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), p, schoolID, classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXlsx(c, buf.Bytes(), filename)
}

// ExportAttendance 导出考勤统计
// GET /api/v1/export/attendance?class_id=xxx&date_from=xxx&date_to=xxx
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.AttendanceSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), p, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXlsx(c, buf.Bytes(), filename)
}

// writeXlsx 设置下载响应头并写入 Excel 内容
func writeXlsx(c *gin.Context, data []byte, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoStudents):
		response.NotFound(c, 45001, "当前范围内无学生数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 30001, "班级不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
