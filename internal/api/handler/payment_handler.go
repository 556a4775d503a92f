package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// PaymentHandler 缴费模块 HTTP 处理器
type PaymentHandler struct {
	paymentSvc service.PaymentService
}

// NewPaymentHandler 创建 PaymentHandler
func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// CreatePayment 录入缴费记录
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	payment, err := h.paymentSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}

	response.Created(c, payment)
}

// GetPayment 获取缴费记录详情
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "缴费记录ID不能为空")
		return
	}

	payment, err := h.paymentSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}

	response.OK(c, payment)
}

// ListPayments 获取缴费记录列表
// GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	payments, total, err := h.paymentSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}

	response.OKPage(c, payments, total, req.GetPage(), req.GetPageSize())
}

// UpdatePayment 更新缴费记录
// PUT /api/v1/payments/:id
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "缴费记录ID不能为空")
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	payment, err := h.paymentSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}

	response.OK(c, payment)
}

// DeletePayment 删除缴费记录
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	p, ok := principalFromContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "缴费记录ID不能为空")
		return
	}

	if err := h.paymentSvc.Delete(c.Request.Context(), p, id); err != nil {
		h.handlePaymentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handlePaymentError 统一处理缴费模块业务错误
func (h *PaymentHandler) handlePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		response.NotFound(c, 40001, "缴费记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 24001, "学生不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
