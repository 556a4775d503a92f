package model

import "time"

// Event 活动日程表 — 对应 events
type Event struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	StartTime   time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime     time.Time `gorm:"not null"                                       json:"end_time"`
	SchoolID    *string   `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	ClassID     *string   `gorm:"type:uuid"                                      json:"class_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
