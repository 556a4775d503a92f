package model

// Parent 家长表 — 对应 parents
// 家长不归属单一学校，子女可分布在多所学校
type Parent struct {
	ParentID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_id"`
	Title        string `gorm:"type:varchar(20)"                               json:"title,omitempty"`
	FirstName    string `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Address      string `gorm:"type:text"                                      json:"address,omitempty"`
	Occupation   string `gorm:"type:varchar(100)"                              json:"occupation,omitempty"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	SoftDeleteModel

	// 关联
	Children []Student `gorm:"foreignKey:ParentID;references:ParentID" json:"children,omitempty"`
}

// TableName 指定表名
func (Parent) TableName() string { return "parents" }
