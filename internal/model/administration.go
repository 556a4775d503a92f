package model

// Administration 行政账号表 — 对应 administrations
// super 账号不归属任何学校（SchoolID 为 NULL）
type Administration struct {
	AdminID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Username     string  `gorm:"type:varchar(50);not null"                      json:"username"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'admin'"      json:"role"` // super | management | admin
	SchoolID     *string `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	SoftDeleteModel

	// 关联
	School *School `gorm:"foreignKey:SchoolID;references:SchoolID" json:"school,omitempty"`
}

// TableName 指定表名
func (Administration) TableName() string { return "administrations" }
