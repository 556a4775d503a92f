package dto

// ── 缴费模块 DTO ──

// CreatePaymentRequest 创建缴费记录请求
type CreatePaymentRequest struct {
	Amount    float64 `json:"amount"     binding:"required,gt=0"`
	Session   string  `json:"session"    binding:"required,len=9"` // 如 2025/2026
	Term      string  `json:"term"       binding:"required,oneof=FIRST SECOND THIRD"`
	Method    string  `json:"method"     binding:"omitempty,oneof=CASH TRANSFER CARD"`
	Reference string  `json:"reference"  binding:"omitempty,max=100"`
	StudentID string  `json:"student_id" binding:"required,uuid"`
}

// UpdatePaymentRequest 更新缴费记录请求
type UpdatePaymentRequest struct {
	Amount    *float64 `json:"amount"    binding:"omitempty,gt=0"`
	Method    *string  `json:"method"    binding:"omitempty,oneof=CASH TRANSFER CARD"`
	Reference *string  `json:"reference" binding:"omitempty,max=100"`
}

// PaymentListRequest 缴费列表查询参数
type PaymentListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	Session   string `form:"session"    binding:"omitempty,len=9"`
	Term      string `form:"term"       binding:"omitempty,oneof=FIRST SECOND THIRD"`
}

// PaymentResponse 缴费记录响应
type PaymentResponse struct {
	ID        string        `json:"id"`
	Amount    float64       `json:"amount"`
	Session   string        `json:"session"`
	Term      string        `json:"term"`
	Method    string        `json:"method"`
	Reference string        `json:"reference,omitempty"`
	PaidAt    string        `json:"paid_at"`
	Student   *StudentBrief `json:"student,omitempty"`
}
