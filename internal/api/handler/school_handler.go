package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// SchoolHandler 学校模块 HTTP 处理器
type SchoolHandler struct {
	schoolSvc service.SchoolService
}

// NewSchoolHandler 创建 SchoolHandler
func NewSchoolHandler(schoolSvc service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolSvc: schoolSvc}
}

// CreateSchool 创建学校
// POST /api/v1/schools
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	school, err := h.schoolSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.Created(c, school)
}

// GetSchool 获取学校详情
// GET /api/v1/schools/:id
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学校ID不能为空")
		return
	}

	school, err := h.schoolSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.OK(c, school)
}

// ListSchools 获取学校列表
// GET /api/v1/schools
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.SchoolListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schools, total, err := h.schoolSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.OKPage(c, schools, total, req.GetPage(), req.GetPageSize())
}

// UpdateSchool 更新学校
// PUT /api/v1/schools/:id
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学校ID不能为空")
		return
	}

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	school, err := h.schoolSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.OK(c, school)
}

// DeleteSchool 删除学校（级联删除所有下属数据，返回各类删除计数）
// DELETE /api/v1/schools/:id
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学校ID不能为空")
		return
	}

	result, err := h.schoolSvc.Delete(c.Request.Context(), p, id)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSchoolError 统一处理学校模块业务错误
func (h *SchoolHandler) handleSchoolError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c, 21001, "学校不存在")
	case errors.Is(err, service.ErrSchoolEmailExists):
		response.BadRequest(c, 21002, "学校邮箱已被占用")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
