package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	Category  string  `json:"category"   binding:"omitempty,max=50"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
	SchoolID  *string `json:"school_id"  binding:"omitempty,uuid"` // super 必填，其余取自身学校
}

// UpdateSubjectRequest 更新科目请求
type UpdateSubjectRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Category  *string `json:"category"   binding:"omitempty,max=50"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	PaginationRequest
	SchoolID  string `form:"school_id"  binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Keyword   string `form:"keyword"    binding:"omitempty,max=50"`
}

// SubjectResponse 科目信息响应
type SubjectResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category,omitempty"`
	Teacher   *TeacherBrief `json:"teacher,omitempty"`
	School    *SchoolBrief  `json:"school,omitempty"`
	CreatedAt string        `json:"created_at"`
}
