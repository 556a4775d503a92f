package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// ParentHandler 家长模块 HTTP 处理器
type ParentHandler struct {
	parentSvc service.ParentService
}

// NewParentHandler 创建 ParentHandler
func NewParentHandler(parentSvc service.ParentService) *ParentHandler {
	return &ParentHandler{parentSvc: parentSvc}
}

// CreateParent 创建家长
// POST /api/v1/parents
func (h *ParentHandler) CreateParent(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parent, err := h.parentSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.Created(c, parent)
}

// GetParent 获取家长详情
// GET /api/v1/parents/:id
func (h *ParentHandler) GetParent(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	parent, err := h.parentSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, parent)
}

// ListParents 获取家长列表
// GET /api/v1/parents
func (h *ParentHandler) ListParents(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.ParentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parents, total, err := h.parentSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OKPage(c, parents, total, req.GetPage(), req.GetPageSize())
}

// UpdateParent 更新家长
// PUT /api/v1/parents/:id
func (h *ParentHandler) UpdateParent(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	var req dto.UpdateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parent, err := h.parentSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, parent)
}

// DeleteParent 删除家长
// DELETE /api/v1/parents/:id
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	if err := h.parentSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleParentError 统一处理家长模块业务错误
func (h *ParentHandler) handleParentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, 24004, "家长不存在")
	case errors.Is(err, service.ErrParentEmailExists):
		response.BadRequest(c, 25001, "家长邮箱已被占用")
	case errors.Is(err, service.ErrParentHasChildren):
		response.BadRequest(c, 25002, "家长名下仍有学生，无法删除")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
