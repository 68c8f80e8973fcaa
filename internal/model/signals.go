package model

// TaskOutcome is one line of recent history fed into generation.
type TaskOutcome struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Platform string `json:"platform,omitempty"`
	Status   string `json:"status"`
}

// ContextSignals is assembled fresh for every generation call and never persisted.
// Any field may be empty: a failed sub-read degrades to the zero value.
type ContextSignals struct {
	ProductName         string             `json:"product_name,omitempty"`
	ValueProp           string             `json:"value_prop,omitempty"`
	TargetAudience      string             `json:"target_audience,omitempty"`
	FocusArea           string             `json:"focus_area,omitempty"`
	Goals               []string           `json:"goals,omitempty"`
	Milestones          []string           `json:"milestones,omitempty"`
	RecentTasks         []TaskOutcome      `json:"recent_tasks,omitempty"`
	Engagement          []EngagementRecord `json:"engagement,omitempty"`
	LatestFeedback      *WeeklyFeedback    `json:"latest_feedback,omitempty"`
	PreferredPlatforms  []string           `json:"preferred_platforms,omitempty"`
	AvoidPlatforms      []string           `json:"avoid_platforms,omitempty"`
	ResearchedPlatforms []string           `json:"researched_platforms,omitempty"`
	DesiredDailyTasks   int                `json:"desired_daily_tasks,omitempty"`
}
