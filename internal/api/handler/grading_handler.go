package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// GradingHandler 成绩册模块 HTTP 处理器
type GradingHandler struct {
	gradingSvc service.GradingService
}

// NewGradingHandler 创建 GradingHandler
func NewGradingHandler(gradingSvc service.GradingService) *GradingHandler {
	return &GradingHandler{gradingSvc: gradingSvc}
}

// CreateGrading 创建成绩册（同一学校+学年+学期唯一）
// POST /api/v1/gradings
func (h *GradingHandler) CreateGrading(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateGradingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grading, err := h.gradingSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.Created(c, grading)
}

// GetGrading 获取成绩册详情（含成绩明细）
// GET /api/v1/gradings/:id
func (h *GradingHandler) GetGrading(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩册ID不能为空")
		return
	}

	grading, err := h.gradingSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OK(c, grading)
}

// ListGradings 获取成绩册列表（student/parent 仅能看到已发布的）
// GET /api/v1/gradings
func (h *GradingHandler) ListGradings(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.GradingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gradings, total, err := h.gradingSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OKPage(c, gradings, total, req.GetPage(), req.GetPageSize())
}

// UpdateGrading 更新成绩册
// PUT /api/v1/gradings/:id
func (h *GradingHandler) UpdateGrading(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩册ID不能为空")
		return
	}

	var req dto.UpdateGradingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grading, err := h.gradingSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OK(c, grading)
}

// DeleteGrading 删除成绩册（级联删除所有成绩，返回删除条数）
// DELETE /api/v1/gradings/:id
func (h *GradingHandler) DeleteGrading(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩册ID不能为空")
		return
	}

	deleted, err := h.gradingSvc.Delete(c.Request.Context(), p, id)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted_grades": deleted})
}

// PublishGrading 发布成绩册（发布后 student/parent 可见）
// POST /api/v1/gradings/:id/publish
func (h *GradingHandler) PublishGrading(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩册ID不能为空")
		return
	}

	grading, err := h.gradingSvc.Publish(c.Request.Context(), p, id)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OK(c, grading)
}

// UpsertGrades 批量录入/更新成绩（服务端计算总分与等级）
// PUT /api/v1/gradings/:id/grades
func (h *GradingHandler) UpsertGrades(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成绩册ID不能为空")
		return
	}

	var req dto.UpsertGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.gradingSvc.UpsertGrades(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleGradingError(c, err)
		return
	}

	response.OK(c, result)
}

// handleGradingError 统一处理成绩册模块业务错误
func (h *GradingHandler) handleGradingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradingNotFound):
		response.NotFound(c, 34001, "成绩册不存在")
	case errors.Is(err, service.ErrGradingExists):
		response.Conflict(c, 34002, "该学年学期的成绩册已存在")
	case errors.Is(err, service.ErrGradingNotPublished):
		response.Forbidden(c, 34003, "成绩册尚未发布")
	case errors.Is(err, service.ErrGradeCrossSchool):
		response.BadRequest(c, 34004, "学生或科目不属于成绩册学校")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 24001, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 31001, "科目不存在")
	case errors.Is(err, service.ErrSchoolMissing):
		response.BadRequest(c, 10001, "必须指定学校")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
