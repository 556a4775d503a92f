package dto

// ── 考勤模块 DTO ──

// MarkAttendanceRequest 批量考勤请求（某节课某天的点名结果）
type MarkAttendanceRequest struct {
	LessonID string                `json:"lesson_id" binding:"required,uuid"`
	Date     string                `json:"date"      binding:"required,datetime=2006-01-02"`
	Records  []AttendanceMarkEntry `json:"records"   binding:"required,min=1,max=200,dive"`
}

// AttendanceMarkEntry 单个学生的考勤结果
type AttendanceMarkEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Present   bool   `json:"present"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	LessonID  string `form:"lesson_id"  binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"  binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to"    binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceSummaryRequest 考勤统计查询参数
type AttendanceSummaryRequest struct {
	ClassID  string `form:"class_id"  binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID      string        `json:"id"`
	Date    string        `json:"date"`
	Present bool          `json:"present"`
	Student *StudentBrief `json:"student,omitempty"`
	Lesson  string        `json:"lesson,omitempty"`
}

// MarkAttendanceResponse 批量考勤响应
type MarkAttendanceResponse struct {
	Marked int `json:"marked"`
}

// AttendanceSummaryResponse 考勤统计响应
type AttendanceSummaryResponse struct {
	Total    int64                  `json:"total"`
	Present  int64                  `json:"present"`
	Absent   int64                  `json:"absent"`
	Rate     float64                `json:"rate"` // 出勤率 0~1
	Students []StudentAttendanceRow `json:"students,omitempty"`
}

// StudentAttendanceRow 按学生聚合的考勤行
type StudentAttendanceRow struct {
	Student StudentBrief `json:"student"`
	Total   int64        `json:"total"`
	Present int64        `json:"present"`
	Rate    float64      `json:"rate"`
}
