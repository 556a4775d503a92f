package dto

// ── 统计模块 DTO ──

// StatsResponse 仪表盘聚合统计（按调用者角色裁剪范围）
type StatsResponse struct {
	Schools       int64          `json:"schools,omitempty"` // 仅 super
	Students      int64          `json:"students"`
	Teachers      int64          `json:"teachers"`
	Parents       int64          `json:"parents"`
	Classes       int64          `json:"classes"`
	Subjects      int64          `json:"subjects"`
	Lessons       int64          `json:"lessons"`
	Announcements int64          `json:"announcements"`
	Events        int64          `json:"events"`
	Gender        GenderStats    `json:"gender"`
	Payments      PaymentsSummed `json:"payments"`
}

// GenderStats 学生性别分布
type GenderStats struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// PaymentsSummed 近期缴费汇总
type PaymentsSummed struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}
