package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Title     string  `json:"title"      binding:"omitempty,max=20"`
	FirstName string  `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string  `json:"last_name"  binding:"required,min=2,max=50"`
	OtherName string  `json:"other_name" binding:"omitempty,max=50"`
	Gender    string  `json:"gender"     binding:"required,oneof=MALE FEMALE"`
	Email     string  `json:"email"      binding:"required,email"`
	Phone     string  `json:"phone"      binding:"omitempty,max=20"`
	Address   string  `json:"address"    binding:"omitempty,max=500"`
	Birthday  string  `json:"birthday"   binding:"omitempty,datetime=2006-01-02"`
	Password  string  `json:"password"   binding:"omitempty,min=8,max=30"` // 为空时生成临时密码
	SchoolID  *string `json:"school_id"  binding:"omitempty,uuid"`         // super 必填，其余取自身学校
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Title     *string `json:"title"      binding:"omitempty,max=20"`
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=2,max=50"`
	OtherName *string `json:"other_name" binding:"omitempty,max=50"`
	Gender    *string `json:"gender"     binding:"omitempty,oneof=MALE FEMALE"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Phone     *string `json:"phone"      binding:"omitempty,max=20"`
	Address   *string `json:"address"    binding:"omitempty,max=500"`
	Birthday  *string `json:"birthday"   binding:"omitempty,datetime=2006-01-02"`
}

// TeacherListRequest 教师列表查询参数
type TeacherListRequest struct {
	PaginationRequest
	SchoolID string `form:"school_id" binding:"omitempty,uuid"` // 仅 super 可跨校指定
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title,omitempty"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	OtherName    string         `json:"other_name,omitempty"`
	Gender       string         `json:"gender"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	Birthday     string         `json:"birthday,omitempty"`
	School       *SchoolBrief   `json:"school,omitempty"`
	Subjects     []SubjectBrief `json:"subjects,omitempty"`
	TempPassword string         `json:"temp_password,omitempty"` // 仅创建时返回
	CreatedAt    string         `json:"created_at"`
}
