package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// 账号按 行政 → 教师 → 学生 → 家长 顺序查找（邮箱全局唯一）
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=30"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // Access Token 有效期（秒）
	User         AccountResponse `json:"user"`
}

// AccountResponse 登录账号信息（跨角色统一视图）
type AccountResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     string       `json:"role"` // super | management | admin | teacher | student | parent
	School   *SchoolBrief `json:"school,omitempty"`
	SchoolID string       `json:"school_id,omitempty"`
}
