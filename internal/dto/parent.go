package dto

// ── 家长模块 DTO ──

// CreateParentRequest 创建家长请求
type CreateParentRequest struct {
	Title      string `json:"title"      binding:"omitempty,max=20"`
	FirstName  string `json:"first_name" binding:"required,min=2,max=50"`
	LastName   string `json:"last_name"  binding:"required,min=2,max=50"`
	Email      string `json:"email"      binding:"required,email"`
	Phone      string `json:"phone"      binding:"omitempty,max=20"`
	Address    string `json:"address"    binding:"omitempty,max=500"`
	Occupation string `json:"occupation" binding:"omitempty,max=100"`
	Password   string `json:"password"   binding:"omitempty,min=8,max=30"` // 为空时生成临时密码
}

// UpdateParentRequest 更新家长请求
type UpdateParentRequest struct {
	Title      *string `json:"title"      binding:"omitempty,max=20"`
	FirstName  *string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName   *string `json:"last_name"  binding:"omitempty,min=2,max=50"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Phone      *string `json:"phone"      binding:"omitempty,max=20"`
	Address    *string `json:"address"    binding:"omitempty,max=500"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
}

// ParentListRequest 家长列表查询参数
type ParentListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// ParentResponse 家长信息响应
type ParentResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title,omitempty"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	Occupation   string         `json:"occupation,omitempty"`
	Children     []StudentBrief `json:"children,omitempty"`
	TempPassword string         `json:"temp_password,omitempty"` // 仅创建时返回
	CreatedAt    string         `json:"created_at"`
}
