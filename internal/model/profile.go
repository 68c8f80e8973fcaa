package model

import "time"

// BusinessProfile 用户的营销档案，任务生成的上下文来源
type BusinessProfile struct {
	UserID              int       `json:"user_id"`
	ProductName         string    `json:"product_name"`
	ValueProp           string    `json:"value_prop"`
	TargetAudience      string    `json:"target_audience"`
	FocusArea           string    `json:"focus_area"`
	Goals               []string  `json:"goals"`
	Milestones          []string  `json:"milestones"`
	PreferredPlatforms  []string  `json:"preferred_platforms"`
	AvoidPlatforms      []string  `json:"avoid_platforms"`
	ResearchedPlatforms []string  `json:"researched_platforms"`
	DesiredDailyTasks   int       `json:"desired_daily_tasks"`
	UpdatedAt           time.Time `json:"updated_at"`
}
