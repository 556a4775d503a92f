package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// NewsHandler 新闻模块 HTTP 处理器
type NewsHandler struct {
	newsSvc service.NewsService
}

// NewNewsHandler 创建 NewsHandler
func NewNewsHandler(newsSvc service.NewsService) *NewsHandler {
	return &NewsHandler{newsSvc: newsSvc}
}

// CreateNews 发布新闻
// POST /api/v1/news
func (h *NewsHandler) CreateNews(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	news, err := h.newsSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleNewsError(c, err)
		return
	}

	response.Created(c, news)
}

// GetNews 获取新闻详情（非管理角色只能看到已发布的）
// GET /api/v1/news/:id
func (h *NewsHandler) GetNews(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "新闻ID不能为空")
		return
	}

	news, err := h.newsSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleNewsError(c, err)
		return
	}

	response.OK(c, news)
}

// ListNews 获取新闻列表
// GET /api/v1/news
func (h *NewsHandler) ListNews(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.ContentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	newsList, total, err := h.newsSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleNewsError(c, err)
		return
	}

	response.OKPage(c, newsList, total, req.GetPage(), req.GetPageSize())
}

// UpdateNews 更新新闻
// PUT /api/v1/news/:id
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "新闻ID不能为空")
		return
	}

	var req dto.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	news, err := h.newsSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleNewsError(c, err)
		return
	}

	response.OK(c, news)
}

// DeleteNews 删除新闻
// DELETE /api/v1/news/:id
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "新闻ID不能为空")
		return
	}

	if err := h.newsSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleNewsError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleNewsError 统一处理新闻模块业务错误
func (h *NewsHandler) handleNewsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		response.NotFound(c, 43001, "新闻不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
