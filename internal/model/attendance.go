package model

import "time"

// Attendance 考勤记录表 — 对应 attendances
// 唯一约束 (student_id, lesson_id, date)，重复打卡走 upsert
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	Present      bool      `gorm:"not null;default:true"                          json:"present"`
	StudentID    string    `gorm:"type:uuid;not null"                             json:"student_id"`
	LessonID     string    `gorm:"type:uuid;not null"                             json:"lesson_id"`
	SchoolID     string    `gorm:"type:uuid;not null"                             json:"school_id"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Lesson  *Lesson  `gorm:"foreignKey:LessonID;references:LessonID"   json:"lesson,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
