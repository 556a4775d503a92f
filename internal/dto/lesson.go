package dto

// ── 课程安排模块 DTO ──

// CreateLessonRequest 创建课程安排请求
// 科目/班级/教师必须属于同一所学校
type CreateLessonRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Day       string `json:"day"        binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   binding:"required,datetime=15:04"`
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	ClassID   string `json:"class_id"   binding:"required,uuid"`
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

// UpdateLessonRequest 更新课程安排请求
type UpdateLessonRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Day       *string `json:"day"        binding:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	StartTime *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time"   binding:"omitempty,datetime=15:04"`
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// LessonListRequest 课程安排列表查询参数
type LessonListRequest struct {
	PaginationRequest
	SchoolID  string `form:"school_id"  binding:"omitempty,uuid"`
	ClassID   string `form:"class_id"   binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Day       string `form:"day"        binding:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
}

// LessonResponse 课程安排信息响应
type LessonResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Day       string        `json:"day"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	Class     *ClassBrief   `json:"class,omitempty"`
	Teacher   *TeacherBrief `json:"teacher,omitempty"`
	CreatedAt string        `json:"created_at"`
}
