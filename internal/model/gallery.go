package model

// Gallery 相册表 — 对应 galleries
type Gallery struct {
	GalleryID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"gallery_id"`
	Title       string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string      `gorm:"type:text"                                      json:"description,omitempty"`
	Images      StringArray `gorm:"type:text[]"                                    json:"images,omitempty"`
	SchoolID    string      `gorm:"type:uuid;not null"                             json:"school_id"`
	BaseModel
}

// TableName 指定表名
func (Gallery) TableName() string { return "galleries" }
