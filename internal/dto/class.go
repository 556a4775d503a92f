package dto

// ── 班级模块 DTO ──

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name         string  `json:"name"          binding:"required,min=1,max=50"`
	Category     string  `json:"category"      binding:"omitempty,max=30"`
	Capacity     int     `json:"capacity"      binding:"omitempty,min=1,max=200"`
	FormmasterID *string `json:"formmaster_id" binding:"omitempty,uuid"`
	SchoolID     *string `json:"school_id"     binding:"omitempty,uuid"` // super 必填，其余取自身学校
}

// UpdateClassRequest 更新班级请求
type UpdateClassRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=50"`
	Category     *string `json:"category"      binding:"omitempty,max=30"`
	Capacity     *int    `json:"capacity"      binding:"omitempty,min=1,max=200"`
	FormmasterID *string `json:"formmaster_id" binding:"omitempty,uuid"`
}

// ClassListRequest 班级列表查询参数
type ClassListRequest struct {
	PaginationRequest
	SchoolID string `form:"school_id" binding:"omitempty,uuid"`
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
}

// ClassResponse 班级信息响应
type ClassResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category,omitempty"`
	Capacity     int           `json:"capacity"`
	Formmaster   *TeacherBrief `json:"formmaster,omitempty"`
	School       *SchoolBrief  `json:"school,omitempty"`
	StudentCount int64         `json:"student_count"`
	CreatedAt    string        `json:"created_at"`
}
