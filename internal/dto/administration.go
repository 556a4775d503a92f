package dto

// ── 行政账号模块 DTO ──

// CreateAdministrationRequest 创建行政账号请求
// super 角色不允许携带 school_id；management/admin 必须归属学校
type CreateAdministrationRequest struct {
	Username string  `json:"username"  binding:"required,min=2,max=50"`
	Email    string  `json:"email"     binding:"required,email"`
	Password string  `json:"password"  binding:"required,min=8,max=30"`
	Role     string  `json:"role"      binding:"required,oneof=super management admin"`
	SchoolID *string `json:"school_id" binding:"omitempty,uuid"`
}

// UpdateAdministrationRequest 更新行政账号请求
type UpdateAdministrationRequest struct {
	Username *string `json:"username"  binding:"omitempty,min=2,max=50"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Role     *string `json:"role"      binding:"omitempty,oneof=super management admin"`
	SchoolID *string `json:"school_id" binding:"omitempty,uuid"`
}

// AdministrationListRequest 行政账号列表查询参数
type AdministrationListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=super management admin"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// AdministrationResponse 行政账号信息响应
type AdministrationResponse struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	School    *SchoolBrief `json:"school,omitempty"`
	CreatedAt string       `json:"created_at"`
}
