package model

// School 学校表 — 对应 schools
// 多租户的租户实体，绝大多数资源按 school_id 分区
type School struct {
	SchoolID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"school_id"`
	Name       string `gorm:"type:varchar(150);not null"                      json:"name"`
	Subtitle   string `gorm:"type:varchar(200)"                               json:"subtitle,omitempty"`
	SchoolType string `gorm:"column:school_type;type:varchar(20);not null;default:'SECONDARY'" json:"school_type"` // NURSERY | PRIMARY | SECONDARY
	Address    string `gorm:"type:text"                                       json:"address,omitempty"`
	Phone      string `gorm:"type:varchar(20)"                                json:"phone,omitempty"`
	Email      string `gorm:"type:varchar(255);not null"                      json:"email"`
	Logo       string `gorm:"type:text"                                       json:"logo,omitempty"`
	RegNumber  string `gorm:"column:reg_number;type:varchar(50)"              json:"reg_number,omitempty"`
	Principal  string `gorm:"type:varchar(100)"                               json:"principal,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (School) TableName() string { return "schools" }
