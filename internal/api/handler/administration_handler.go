package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// AdministrationHandler 行政账号模块 HTTP 处理器
type AdministrationHandler struct {
	adminSvc service.AdministrationService
}

// NewAdministrationHandler 创建 AdministrationHandler
func NewAdministrationHandler(adminSvc service.AdministrationService) *AdministrationHandler {
	return &AdministrationHandler{adminSvc: adminSvc}
}

// CreateAdministration 创建行政账号
// POST /api/v1/administrations
func (h *AdministrationHandler) CreateAdministration(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAdministrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.adminSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAdministrationError(c, err)
		return
	}

	response.Created(c, admin)
}

// GetAdministration 获取行政账号详情
// GET /api/v1/administrations/:id
func (h *AdministrationHandler) GetAdministration(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "账号ID不能为空")
		return
	}

	admin, err := h.adminSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleAdministrationError(c, err)
		return
	}

	response.OK(c, admin)
}

// ListAdministrations 获取行政账号列表
// GET /api/v1/administrations
func (h *AdministrationHandler) ListAdministrations(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.AdministrationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admins, total, err := h.adminSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAdministrationError(c, err)
		return
	}

	response.OKPage(c, admins, total, req.GetPage(), req.GetPageSize())
}

// UpdateAdministration 更新行政账号
// PUT /api/v1/administrations/:id
func (h *AdministrationHandler) UpdateAdministration(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "账号ID不能为空")
		return
	}

	var req dto.UpdateAdministrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.adminSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleAdministrationError(c, err)
		return
	}

	response.OK(c, admin)
}

// DeleteAdministration 删除行政账号
// DELETE /api/v1/administrations/:id
func (h *AdministrationHandler) DeleteAdministration(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "账号ID不能为空")
		return
	}

	if err := h.adminSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleAdministrationError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAdministrationError 统一处理行政账号模块业务错误
func (h *AdministrationHandler) handleAdministrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, 22001, "行政账号不存在")
	case errors.Is(err, service.ErrAdminEmailExists):
		response.BadRequest(c, 22002, "邮箱已被占用")
	case errors.Is(err, service.ErrSuperNeedsNoSchool):
		response.BadRequest(c, 22003, "super 账号不能归属学校")
	case errors.Is(err, service.ErrAdminNeedsSchool):
		response.BadRequest(c, 22004, "management/admin 账号必须归属学校")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, 22005, "不能删除自己的账号")
	case errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c, 21001, "学校不存在")
	case errors.Is(err, service.ErrSchoolMissing):
		response.BadRequest(c, 10001, "必须指定学校")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
