package dto

// ── 成绩模块 DTO ──

// CreateGradingRequest 创建成绩册请求
// 同一学校同一学年学期只能有一册，冲突返回 409
type CreateGradingRequest struct {
	Session  string  `json:"session"   binding:"required,len=9"` // 如 2025/2026
	Term     string  `json:"term"      binding:"required,oneof=FIRST SECOND THIRD"`
	SchoolID *string `json:"school_id" binding:"omitempty,uuid"` // super 必填，其余取自身学校
}

// UpdateGradingRequest 更新成绩册请求
type UpdateGradingRequest struct {
	Session *string `json:"session" binding:"omitempty,len=9"`
	Term    *string `json:"term"    binding:"omitempty,oneof=FIRST SECOND THIRD"`
}

// GradingListRequest 成绩册列表查询参数
type GradingListRequest struct {
	PaginationRequest
	SchoolID string `form:"school_id" binding:"omitempty,uuid"`
	Session  string `form:"session"   binding:"omitempty,len=9"`
	Term     string `form:"term"      binding:"omitempty,oneof=FIRST SECOND THIRD"`
}

// GradingResponse 成绩册响应
type GradingResponse struct {
	ID         string       `json:"id"`
	Session    string       `json:"session"`
	Term       string       `json:"term"`
	Published  bool         `json:"published"`
	School     *SchoolBrief `json:"school,omitempty"`
	GradeCount int64        `json:"grade_count"`
	CreatedAt  string       `json:"created_at"`
}

// GradingDetailResponse 成绩册详情（含成绩明细）
type GradingDetailResponse struct {
	GradingResponse
	Grades []GradeResponse `json:"grades"`
}

// UpsertGradesRequest 批量录入/更新成绩请求
type UpsertGradesRequest struct {
	Grades []GradeEntry `json:"grades" binding:"required,min=1,max=500,dive"`
}

// GradeEntry 单条成绩录入
type GradeEntry struct {
	StudentID   string `json:"student_id" binding:"required,uuid"`
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
	CA1         int    `json:"ca1"         binding:"min=0,max=20"`
	CA2         int    `json:"ca2"         binding:"min=0,max=20"`
	Exam        int    `json:"exam"        binding:"min=0,max=60"`
	Affective   int    `json:"affective"   binding:"min=0,max=5"`
	Psychomotor int    `json:"psychomotor" binding:"min=0,max=5"`
}

// GradeResponse 单科成绩响应
type GradeResponse struct {
	ID          string        `json:"id"`
	Student     *StudentBrief `json:"student,omitempty"`
	Subject     *SubjectBrief `json:"subject,omitempty"`
	CA1         int           `json:"ca1"`
	CA2         int           `json:"ca2"`
	Exam        int           `json:"exam"`
	Total       int           `json:"total"`
	Remark      string        `json:"remark"`
	Affective   int           `json:"affective"`
	Psychomotor int           `json:"psychomotor"`
}

// UpsertGradesResponse 批量录入成绩响应
type UpsertGradesResponse struct {
	Upserted int `json:"upserted"`
}
