package model

// Subject 科目表 — 对应 subjects
type Subject struct {
	SubjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Category  string  `gorm:"type:varchar(50)"                               json:"category,omitempty"`
	SchoolID  string  `gorm:"type:uuid;not null"                             json:"school_id"`
	TeacherID *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	SoftDeleteModel

	// 关联
	School  *School  `gorm:"foreignKey:SchoolID;references:SchoolID"   json:"school,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
