package dto

// ── 公告/活动/新闻/相册模块 DTO ──

// CreateAnnouncementRequest 创建公告请求
// super 可不携带 school_id（全局公告）
type CreateAnnouncementRequest struct {
	Title       string  `json:"title"       binding:"required,min=2,max=200"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Date        string  `json:"date"        binding:"required,datetime=2006-01-02"`
	SchoolID    *string `json:"school_id"   binding:"omitempty,uuid"`
	ClassID     *string `json:"class_id"    binding:"omitempty,uuid"`
}

// UpdateAnnouncementRequest 更新公告请求
type UpdateAnnouncementRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Date        *string `json:"date"        binding:"omitempty,datetime=2006-01-02"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	SchoolID    string `json:"school_id,omitempty"`
	ClassID     string `json:"class_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Title       string  `json:"title"       binding:"required,min=2,max=200"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	StartTime   string  `json:"start_time"  binding:"required"` // RFC3339
	EndTime     string  `json:"end_time"    binding:"required"`
	SchoolID    *string `json:"school_id"   binding:"omitempty,uuid"`
	ClassID     *string `json:"class_id"    binding:"omitempty,uuid"`
}

// UpdateEventRequest 更新活动请求
type UpdateEventRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

// EventResponse 活动响应
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SchoolID    string `json:"school_id,omitempty"`
	ClassID     string `json:"class_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// CreateNewsRequest 创建新闻请求
type CreateNewsRequest struct {
	Title     string  `json:"title"     binding:"required,min=2,max=200"`
	Body      string  `json:"body"      binding:"required"`
	Image     string  `json:"image"     binding:"omitempty,max=500"`
	Published bool    `json:"published"`
	SchoolID  *string `json:"school_id" binding:"omitempty,uuid"`
}

// UpdateNewsRequest 更新新闻请求
type UpdateNewsRequest struct {
	Title     *string `json:"title"     binding:"omitempty,min=2,max=200"`
	Body      *string `json:"body"`
	Image     *string `json:"image"     binding:"omitempty,max=500"`
	Published *bool   `json:"published"`
}

// NewsResponse 新闻响应
type NewsResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Image     string `json:"image,omitempty"`
	Published bool   `json:"published"`
	SchoolID  string `json:"school_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateGalleryRequest 创建相册请求
type CreateGalleryRequest struct {
	Title       string   `json:"title"       binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Images      []string `json:"images"      binding:"omitempty,max=50,dive,max=500"`
	SchoolID    *string  `json:"school_id"   binding:"omitempty,uuid"`
}

// UpdateGalleryRequest 更新相册请求
type UpdateGalleryRequest struct {
	Title       *string  `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Images      []string `json:"images"      binding:"omitempty,max=50,dive,max=500"`
}

// GalleryResponse 相册响应
type GalleryResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	SchoolID    string   `json:"school_id"`
	CreatedAt   string   `json:"created_at"`
}

// ContentListRequest 公告/活动/新闻/相册通用列表查询参数
type ContentListRequest struct {
	PaginationRequest
	SchoolID string `form:"school_id" binding:"omitempty,uuid"`
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
}
