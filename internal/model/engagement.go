package model

import "time"

// EngagementRecord 单条内容的表现数据
type EngagementRecord struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Platform    string    `json:"platform"`
	ContentType string    `json:"content_type"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	Replies     int       `json:"replies"`
	CreatedAt   time.Time `json:"created_at"`
}
