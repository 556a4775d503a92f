package model

// News 新闻表 — 对应 news
type News struct {
	NewsID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"news_id"`
	Title     string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Body      string  `gorm:"type:text;not null"                             json:"body"`
	Image     string  `gorm:"type:text"                                      json:"image,omitempty"`
	Published bool    `gorm:"not null;default:false"                         json:"published"`
	SchoolID  *string `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (News) TableName() string { return "news" }
