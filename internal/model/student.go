package model

import "time"

// Student 学生表 — 对应 students
type Student struct {
	StudentID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	AdmissionNumber string     `gorm:"type:varchar(50);not null"                      json:"admission_number"`
	FirstName       string     `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName        string     `gorm:"type:varchar(50);not null"                      json:"last_name"`
	OtherName       string     `gorm:"type:varchar(50)"                               json:"other_name,omitempty"`
	Gender          string     `gorm:"type:varchar(10);not null;default:'MALE'"       json:"gender"` // MALE | FEMALE
	Birthday        *time.Time `gorm:"type:date"                                      json:"birthday,omitempty"`
	Address         string     `gorm:"type:text"                                      json:"address,omitempty"`
	Email           string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone           string     `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"                     json:"-"`
	SchoolID        string     `gorm:"type:uuid;not null"                             json:"school_id"`
	ClassID         *string    `gorm:"type:uuid"                                      json:"class_id,omitempty"`
	ParentID        *string    `gorm:"type:uuid"                                      json:"parent_id,omitempty"`
	SoftDeleteModel

	// 关联
	School *School `gorm:"foreignKey:SchoolID;references:SchoolID" json:"school,omitempty"`
	Class  *Class  `gorm:"foreignKey:ClassID;references:ClassID"   json:"class,omitempty"`
	Parent *Parent `gorm:"foreignKey:ParentID;references:ParentID" json:"parent,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
