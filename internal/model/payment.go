package model

import "time"

// Payment 缴费记录表 — 对应 payments
type Payment struct {
	PaymentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`
	Amount    float64   `gorm:"type:numeric(12,2);not null"                    json:"amount"`
	Session   string    `gorm:"type:varchar(9);not null"                       json:"session"` // 如 2025/2026
	Term      string    `gorm:"type:varchar(10);not null"                      json:"term"`    // FIRST | SECOND | THIRD
	Method    string    `gorm:"type:varchar(20);not null;default:'CASH'"       json:"method"`  // CASH | TRANSFER | CARD
	Reference string    `gorm:"type:varchar(100)"                              json:"reference,omitempty"`
	PaidAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"paid_at"`
	StudentID string    `gorm:"type:uuid;not null"                             json:"student_id"`
	SchoolID  string    `gorm:"type:uuid;not null"                             json:"school_id"`
	SoftDeleteModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Payment) TableName() string { return "payments" }
