package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
// 学籍号与默认密码由服务端生成
type CreateStudentRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string  `json:"last_name"  binding:"required,min=2,max=50"`
	OtherName string  `json:"other_name" binding:"omitempty,max=50"`
	Gender    string  `json:"gender"     binding:"required,oneof=MALE FEMALE"`
	Birthday  string  `json:"birthday"   binding:"omitempty,datetime=2006-01-02"`
	Address   string  `json:"address"    binding:"omitempty,max=500"`
	Email     string  `json:"email"      binding:"required,email"`
	Phone     string  `json:"phone"      binding:"omitempty,max=20"`
	SchoolID  *string `json:"school_id"  binding:"omitempty,uuid"` // super 必填，其余取自身学校
	ClassID   *string `json:"class_id"   binding:"omitempty,uuid"`
	ParentID  *string `json:"parent_id"  binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=2,max=50"`
	OtherName *string `json:"other_name" binding:"omitempty,max=50"`
	Gender    *string `json:"gender"     binding:"omitempty,oneof=MALE FEMALE"`
	Birthday  *string `json:"birthday"   binding:"omitempty,datetime=2006-01-02"`
	Address   *string `json:"address"    binding:"omitempty,max=500"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Phone     *string `json:"phone"      binding:"omitempty,max=20"`
	ClassID   *string `json:"class_id"   binding:"omitempty,uuid"`
	ParentID  *string `json:"parent_id"  binding:"omitempty,uuid"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	PaginationRequest
	SchoolID string `form:"school_id" binding:"omitempty,uuid"`
	ClassID  string `form:"class_id"  binding:"omitempty,uuid"`
	Gender   string `form:"gender"    binding:"omitempty,oneof=MALE FEMALE"`
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID              string       `json:"id"`
	AdmissionNumber string       `json:"admission_number"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	OtherName       string       `json:"other_name,omitempty"`
	Gender          string       `json:"gender"`
	Birthday        string       `json:"birthday,omitempty"`
	Address         string       `json:"address,omitempty"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone,omitempty"`
	School          *SchoolBrief `json:"school,omitempty"`
	Class           *ClassBrief  `json:"class,omitempty"`
	ParentID        string       `json:"parent_id,omitempty"`
	TempPassword    string       `json:"temp_password,omitempty"` // 仅创建时返回
	CreatedAt       string       `json:"created_at"`
}

// ImportStudentResponse 批量导入学生响应
type ImportStudentResponse struct {
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
	Errors  []ImportStudentError `json:"errors,omitempty"`
}

// ImportStudentError 导入错误详情
type ImportStudentError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
