package plangen

import (
	"fmt"

	"growthplan/internal/model"
)

// Two deliberate thresholds: 50% of the prior week attempted unlocks VIEWING
// a week, but adaptive generation of a new week requires the prior week to be
// fully attempted. The asymmetry prevents premature strategy drift.
const (
	ViewUnlockRatio       = 0.5
	AdaptiveGenerateRatio = 1.0
)

// GateStatus is the result of evaluating the week gate. Locked is an expected
// state, not an error.
type GateStatus struct {
	Week             int     `json:"week"`
	AttemptedRatio   float64 `json:"attempted_ratio"`
	Viewable         bool    `json:"viewable"`
	ReadyForAdaptive bool    `json:"ready_for_adaptive"`
	Message          string  `json:"message,omitempty"`
}

// AttemptedRatio computes (completed+skipped)/total over a week's tasks.
// An empty week counts as 0.
func AttemptedRatio(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	attempted := 0
	for _, t := range tasks {
		if t.Attempted() {
			attempted++
		}
	}
	return float64(attempted) / float64(len(tasks))
}

// EvaluateGate decides whether a week may be viewed and whether it may be
// adaptively generated, from the prior week's tasks. Week 1 is always open.
// Pure and side-effect-free.
func EvaluateGate(week int, priorWeekTasks []model.Task) GateStatus {
	if week <= 1 {
		return GateStatus{
			Week:             week,
			AttemptedRatio:   1,
			Viewable:         true,
			ReadyForAdaptive: true,
		}
	}

	ratio := AttemptedRatio(priorWeekTasks)
	status := GateStatus{
		Week:             week,
		AttemptedRatio:   ratio,
		Viewable:         ratio >= ViewUnlockRatio,
		ReadyForAdaptive: ratio >= AdaptiveGenerateRatio,
	}
	if !status.Viewable {
		status.Message = fmt.Sprintf(
			"Week %d is locked. Complete or skip at least 50%% of week %d's tasks to unlock it — you're at %d%%.",
			week, week-1, int(ratio*100),
		)
	}
	return status
}
