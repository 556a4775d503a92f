package model

import "time"

// Announcement 公告表 — 对应 announcements
// school_id 为 NULL 时是全局公告，所有角色可见
type Announcement struct {
	AnnouncementID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string    `gorm:"type:text"                                      json:"description,omitempty"`
	Date           time.Time `gorm:"type:date;not null"                             json:"date"`
	SchoolID       *string   `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	ClassID        *string   `gorm:"type:uuid"                                      json:"class_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }
