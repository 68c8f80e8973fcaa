package model

import "time"

// WeeklyFeedback 用户每周复盘时留下的反馈
type WeeklyFeedback struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Week      int       `json:"week"`
	WentWell  string    `json:"went_well"`
	Struggled string    `json:"struggled"`
	NextFocus string    `json:"next_focus"`
	CreatedAt time.Time `json:"created_at"`
}
