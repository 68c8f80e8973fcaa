package plangen

import (
	"context"

	"growthplan/internal/model"
)

// CandidateTask is one raw task record coming back from a generator, before
// normalization and filtering.
type CandidateTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Platform    string   `json:"platform"`
	Impact      string   `json:"impact"`
	Tips        []string `json:"tips"`
	Type        string   `json:"type"`
}

// GenerationRequest is the wire contract sent to a generator backend.
type GenerationRequest struct {
	Signals       model.ContextSignals `json:"context"`
	Day           int                  `json:"day"`
	Week          int                  `json:"week"`
	Month         int                  `json:"month"`
	FocusArea     string               `json:"focus_area,omitempty"`
	DesiredCount  int                  `json:"desired_daily_count"`
	ExcludeTitles []string             `json:"exclude_titles,omitempty"`
}

// GenerationResponse is the daily response shape.
type GenerationResponse struct {
	Tasks []CandidateTask `json:"tasks"`
}

// WeeklyDayPlan / WeeklyPlanResponse is the weekly response variant some
// backends return even for daily requests.
type WeeklyDayPlan struct {
	Day   int             `json:"day"`
	Focus string          `json:"focus"`
	Tasks []CandidateTask `json:"tasks"`
}

type WeeklyPlanResponse struct {
	WeeklyTheme string          `json:"weekly_theme"`
	Days        []WeeklyDayPlan `json:"days"`
}

// GenerationClient is the opaque external generator. Implementations must
// return an error for non-2xx responses, undecodable payloads and empty task
// lists; the seeder treats all three identically and fills with fallback
// synthesis instead of retrying.
type GenerationClient interface {
	Generate(ctx context.Context, req GenerationRequest) ([]CandidateTask, error)
}
