package model

// Grading 成绩册表 — 对应 gradings
// 每 (school_id, session, term) 唯一；published 前学生/家长不可见
type Grading struct {
	GradingID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grading_id"`
	Session   string `gorm:"type:varchar(9);not null"                       json:"session"`
	Term      string `gorm:"type:varchar(10);not null"                      json:"term"` // FIRST | SECOND | THIRD
	Published bool   `gorm:"not null;default:false"                         json:"published"`
	SchoolID  string `gorm:"type:uuid;not null"                             json:"school_id"`
	BaseModel

	// 关联
	School *School `gorm:"foreignKey:SchoolID;references:SchoolID"   json:"school,omitempty"`
	Grades []Grade `gorm:"foreignKey:GradingID;references:GradingID" json:"grades,omitempty"`
}

// TableName 指定表名
func (Grading) TableName() string { return "gradings" }

// Grade 单科成绩表 — 对应 grades
// total 由服务端计算 (ca1+ca2+exam)，remark 由 total 推导
type Grade struct {
	GradeID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	GradingID   string `gorm:"type:uuid;not null"                             json:"grading_id"`
	StudentID   string `gorm:"type:uuid;not null"                             json:"student_id"`
	SubjectID   string `gorm:"type:uuid;not null"                             json:"subject_id"`
	CA1         int    `gorm:"column:ca1;not null;default:0"                  json:"ca1"`
	CA2         int    `gorm:"column:ca2;not null;default:0"                  json:"ca2"`
	Exam        int    `gorm:"not null;default:0"                             json:"exam"`
	Total       int    `gorm:"not null;default:0"                             json:"total"`
	Remark      string `gorm:"type:varchar(2);not null;default:'F'"           json:"remark"` // A..F
	Affective   int    `gorm:"not null;default:0"                             json:"affective"`
	Psychomotor int    `gorm:"not null;default:0"                             json:"psychomotor"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
