package dto

// ── 学校模块 DTO ──

// CreateSchoolRequest 创建学校请求（仅 super）
type CreateSchoolRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=150"`
	Subtitle   string `json:"subtitle"    binding:"omitempty,max=200"`
	SchoolType string `json:"school_type" binding:"omitempty,oneof=NURSERY PRIMARY SECONDARY"`
	Address    string `json:"address"     binding:"omitempty,max=500"`
	Phone      string `json:"phone"       binding:"omitempty,max=20"`
	Email      string `json:"email"       binding:"required,email"`
	Logo       string `json:"logo"        binding:"omitempty,max=500"`
	RegNumber  string `json:"reg_number"  binding:"omitempty,max=50"`
	Principal  string `json:"principal"   binding:"omitempty,max=100"`
}

// UpdateSchoolRequest 更新学校请求
type UpdateSchoolRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=150"`
	Subtitle   *string `json:"subtitle"    binding:"omitempty,max=200"`
	SchoolType *string `json:"school_type" binding:"omitempty,oneof=NURSERY PRIMARY SECONDARY"`
	Address    *string `json:"address"     binding:"omitempty,max=500"`
	Phone      *string `json:"phone"       binding:"omitempty,max=20"`
	Email      *string `json:"email"       binding:"omitempty,email"`
	Logo       *string `json:"logo"        binding:"omitempty,max=500"`
	RegNumber  *string `json:"reg_number"  binding:"omitempty,max=50"`
	Principal  *string `json:"principal"   binding:"omitempty,max=100"`
}

// SchoolListRequest 学校列表查询参数
type SchoolListRequest struct {
	PaginationRequest
	Keyword    string `form:"keyword"     binding:"omitempty,max=50"`
	SchoolType string `form:"school_type" binding:"omitempty,oneof=NURSERY PRIMARY SECONDARY"`
}

// SchoolResponse 学校信息响应
type SchoolResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Subtitle   string `json:"subtitle,omitempty"`
	SchoolType string `json:"school_type"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email"`
	Logo       string `json:"logo,omitempty"`
	RegNumber  string `json:"reg_number,omitempty"`
	Principal  string `json:"principal,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// DeleteSchoolResponse 级联删除学校响应（各依赖表删除行数）
type DeleteSchoolResponse struct {
	Teachers      int64 `json:"teachers"`
	Students      int64 `json:"students"`
	Classes       int64 `json:"classes"`
	Subjects      int64 `json:"subjects"`
	Lessons       int64 `json:"lessons"`
	Attendances   int64 `json:"attendances"`
	Payments      int64 `json:"payments"`
	Gradings      int64 `json:"gradings"`
	Grades        int64 `json:"grades"`
	Announcements int64 `json:"announcements"`
	Events        int64 `json:"events"`
	News          int64 `json:"news"`
	Galleries     int64 `json:"galleries"`
}
