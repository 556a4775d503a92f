package model

// Lesson 课程安排表 — 对应 lessons
// 一节课 = 科目 × 班级 × 教师 × 周几时段
type Lesson struct {
	LessonID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Day       string `gorm:"type:varchar(10);not null"                      json:"day"`        // MONDAY..FRIDAY
	StartTime string `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime   string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	SubjectID string `gorm:"type:uuid;not null"                             json:"subject_id"`
	ClassID   string `gorm:"type:uuid;not null"                             json:"class_id"`
	TeacherID string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	SchoolID  string `gorm:"type:uuid;not null"                             json:"school_id"`
	SoftDeleteModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Class   *Class   `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }
