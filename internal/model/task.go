package model

import (
	"fmt"
	"time"
)

// Task statuses. Terminal states are never revisited automatically.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
)

// Task categories.
const (
	CategoryContent    = "content"
	CategoryAnalytics  = "analytics"
	CategoryCommunity  = "community"
	CategoryStrategy   = "strategy"
	CategoryEngagement = "engagement"
)

// Task types: exploit targets a known-good channel, explore is an experiment.
const (
	TypeExploit = "exploit"
	TypeExplore = "explore"
)

// Task sources, recorded in metadata.
const (
	SourceGenerated  = "generated"
	SourceFallback   = "generated_fallback"
	SourcePlanParsed = "plan_parsed"
	SourceManual     = "manual"
)

const AlgorithmVersion = "v2"

type TaskMetadata struct {
	Source           string `json:"source"`
	AlgorithmVersion string `json:"algorithm_version"`
}

type Task struct {
	ID             string       `json:"id"`
	UserID         int          `json:"user_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Platform       string       `json:"platform"`
	Status         string       `json:"status"`
	Day            int          `json:"day"`
	Type           string       `json:"type"`
	Impact         string       `json:"impact,omitempty"`
	Tips           []string     `json:"tips,omitempty"`
	DedupKey       string       `json:"-"`
	Metadata       TaskMetadata `json:"metadata"`
	CompletionNote string       `json:"completion_note,omitempty"`
	SkippedCount   int          `json:"skipped_count,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Week and Month are always derived from Day, never stored.
func (t *Task) Week() int  { return WeekOf(t.Day) }
func (t *Task) Month() int { return MonthOf(t.Day) }

// WeekOf returns the 1-based week bucket for a 1-based day.
func WeekOf(day int) int {
	return (day + 6) / 7
}

// MonthOf returns the 1-based month bucket for a 1-based day.
func MonthOf(day int) int {
	return (day + 29) / 30
}

// FirstDayOfWeek returns the first day in a 1-based week.
func FirstDayOfWeek(week int) int {
	return (week-1)*7 + 1
}

// FirstDayOfMonth returns the first day in a 1-based month.
func FirstDayOfMonth(month int) int {
	return (month-1)*30 + 1
}

// Attempted reports whether the user handled the task either way.
func (t *Task) Attempted() bool {
	return t.Status == StatusCompleted || t.Status == StatusSkipped
}

// ValidateStatusTransition enforces pending→completed and pending→skipped only.
func ValidateStatusTransition(from, to string) error {
	if from == StatusPending && (to == StatusCompleted || to == StatusSkipped) {
		return nil
	}
	return fmt.Errorf("invalid status transition %q -> %q", from, to)
}
