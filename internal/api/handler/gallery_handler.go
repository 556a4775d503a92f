package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// GalleryHandler 相册模块 HTTP 处理器
type GalleryHandler struct {
	gallerySvc service.GalleryService
}

// NewGalleryHandler 创建 GalleryHandler
func NewGalleryHandler(gallerySvc service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallerySvc: gallerySvc}
}

// CreateGallery 创建相册
// POST /api/v1/galleries
func (h *GalleryHandler) CreateGallery(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gallery, err := h.gallerySvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleGalleryError(c, err)
		return
	}

	response.Created(c, gallery)
}

// GetGallery 获取相册详情
// GET /api/v1/galleries/:id
func (h *GalleryHandler) GetGallery(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "相册ID不能为空")
		return
	}

	gallery, err := h.gallerySvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleGalleryError(c, err)
		return
	}

	response.OK(c, gallery)
}

// ListGalleries 获取相册列表
// GET /api/v1/galleries
func (h *GalleryHandler) ListGalleries(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.ContentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	galleries, total, err := h.gallerySvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleGalleryError(c, err)
		return
	}

	response.OKPage(c, galleries, total, req.GetPage(), req.GetPageSize())
}

// UpdateGallery 更新相册
// PUT /api/v1/galleries/:id
func (h *GalleryHandler) UpdateGallery(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "相册ID不能为空")
		return
	}

	var req dto.UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gallery, err := h.gallerySvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleGalleryError(c, err)
		return
	}

	response.OK(c, gallery)
}

// DeleteGallery 删除相册
// DELETE /api/v1/galleries/:id
func (h *GalleryHandler) DeleteGallery(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "相册ID不能为空")
		return
	}

	if err := h.gallerySvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleGalleryError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleGalleryError 统一处理相册模块业务错误
func (h *GalleryHandler) handleGalleryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGalleryNotFound):
		response.NotFound(c, 44001, "相册不存在")
	case errors.Is(err, service.ErrSchoolMissing):
		response.BadRequest(c, 10001, "必须指定学校")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
