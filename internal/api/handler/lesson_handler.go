package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// LessonHandler 课程安排模块 HTTP 处理器
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler 创建 LessonHandler
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// CreateLesson 创建课程安排
// POST /api/v1/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lesson, err := h.lessonSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.Created(c, lesson)
}

// GetLesson 获取课程安排详情
// GET /api/v1/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	lesson, err := h.lessonSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, lesson)
}

// ListLessons 获取课程安排列表（teacher 角色默认过滤为自己的课）
// GET /api/v1/lessons
func (h *LessonHandler) ListLessons(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lessons, total, err := h.lessonSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OKPage(c, lessons, total, req.GetPage(), req.GetPageSize())
}

// UpdateLesson 更新课程安排
// PUT /api/v1/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lesson, err := h.lessonSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, lesson)
}

// DeleteLesson 删除课程安排
// DELETE /api/v1/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	if err := h.lessonSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLessonError 统一处理课程安排模块业务错误
func (h *LessonHandler) handleLessonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 32001, "课程安排不存在")
	case errors.Is(err, service.ErrLessonCrossSite):
		response.BadRequest(c, 32002, "科目、班级与教师必须属于同一所学校")
	case errors.Is(err, service.ErrLessonTimeOrder):
		response.BadRequest(c, 32003, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 31001, "科目不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 30001, "班级不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 23001, "教师不存在")
	case errors.Is(err, service.ErrSchoolMissing):
		response.BadRequest(c, 10001, "必须指定学校")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
