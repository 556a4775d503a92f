package model

// Class 班级表 — 对应 classes
type Class struct {
	ClassID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name         string  `gorm:"type:varchar(50);not null"                      json:"name"`
	Category     string  `gorm:"type:varchar(30)"                               json:"category,omitempty"`
	Capacity     int     `gorm:"not null;default:40"                            json:"capacity"`
	FormmasterID *string `gorm:"column:formmaster_id;type:uuid"                 json:"formmaster_id,omitempty"`
	SchoolID     string  `gorm:"type:uuid;not null"                             json:"school_id"`
	SoftDeleteModel

	// 关联
	School     *School   `gorm:"foreignKey:SchoolID;references:SchoolID"       json:"school,omitempty"`
	Formmaster *Teacher  `gorm:"foreignKey:FormmasterID;references:TeacherID"  json:"formmaster,omitempty"`
	Students   []Student `gorm:"foreignKey:ClassID;references:ClassID"         json:"students,omitempty"`
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
