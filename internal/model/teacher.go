package model

import "time"

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Title        string     `gorm:"type:varchar(20)"                               json:"title,omitempty"`
	FirstName    string     `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string     `gorm:"type:varchar(50);not null"                      json:"last_name"`
	OtherName    string     `gorm:"type:varchar(50)"                               json:"other_name,omitempty"`
	Gender       string     `gorm:"type:varchar(10);not null;default:'MALE'"       json:"gender"` // MALE | FEMALE
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string     `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Address      string     `gorm:"type:text"                                      json:"address,omitempty"`
	Birthday     *time.Time `gorm:"type:date"                                      json:"birthday,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	SchoolID     string     `gorm:"type:uuid;not null"                             json:"school_id"`
	SoftDeleteModel

	// 关联
	School   *School   `gorm:"foreignKey:SchoolID;references:SchoolID"   json:"school,omitempty"`
	Subjects []Subject `gorm:"foreignKey:TeacherID;references:TeacherID" json:"subjects,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
