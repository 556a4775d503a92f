package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// CreateAnnouncement 发布公告（super 不指定学校时发布全局公告）
// POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	announcement, err := h.announcementSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.Created(c, announcement)
}

// GetAnnouncement 获取公告详情
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	announcement, err := h.announcementSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, announcement)
}

// ListAnnouncements 获取公告列表（含全局公告）
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.ContentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	announcements, total, err := h.announcementSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OKPage(c, announcements, total, req.GetPage(), req.GetPageSize())
}

// UpdateAnnouncement 更新公告
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	announcement, err := h.announcementSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, announcement)
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAnnouncementError 统一处理公告模块业务错误
func (h *AnnouncementHandler) handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 41001, "公告不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
