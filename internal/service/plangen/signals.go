package plangen

import (
	"context"

	"go.uber.org/zap"

	"growthplan/internal/model"
)

const (
	historyWindowDays = 14
	engagementCap     = 10
)

// Read-side collaborators the assembler pulls from. All reads are optional:
// a failed read degrades to an empty field, never to a failed assembly.
type ProfileSource interface {
	Get(ctx context.Context, userID int) (*model.BusinessProfile, error)
}

type TaskHistorySource interface {
	ListByDayRange(ctx context.Context, userID, fromDay, toDay int) ([]model.Task, error)
}

type EngagementSource interface {
	ListRecent(ctx context.Context, userID, limit int) ([]model.EngagementRecord, error)
}

type FeedbackSource interface {
	Latest(ctx context.Context, userID int) (*model.WeeklyFeedback, error)
}

// ContextAssembler gathers everything a generation call needs into one
// ContextSignals record. Read-only; recomputed per call.
type ContextAssembler struct {
	profiles   ProfileSource
	tasks      TaskHistorySource
	engagement EngagementSource
	feedback   FeedbackSource
	logger     *zap.Logger
}

func NewContextAssembler(
	profiles ProfileSource,
	tasks TaskHistorySource,
	engagement EngagementSource,
	feedback FeedbackSource,
	logger *zap.Logger,
) *ContextAssembler {
	return &ContextAssembler{
		profiles:   profiles,
		tasks:      tasks,
		engagement: engagement,
		feedback:   feedback,
		logger:     logger,
	}
}

// Assemble builds the signals for generating tasks around the given day.
func (a *ContextAssembler) Assemble(ctx context.Context, userID, day int) model.ContextSignals {
	signals := model.ContextSignals{}

	profile, err := a.profiles.Get(ctx, userID)
	if err != nil {
		a.logger.Warn("Context assembly: profile read failed, proceeding without it",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
	} else if profile != nil {
		signals.ProductName = profile.ProductName
		signals.ValueProp = profile.ValueProp
		signals.TargetAudience = profile.TargetAudience
		signals.FocusArea = profile.FocusArea
		signals.Goals = profile.Goals
		signals.Milestones = profile.Milestones
		signals.PreferredPlatforms = profile.PreferredPlatforms
		signals.AvoidPlatforms = profile.AvoidPlatforms
		signals.ResearchedPlatforms = profile.ResearchedPlatforms
		signals.DesiredDailyTasks = profile.DesiredDailyTasks
	}

	fromDay := day - historyWindowDays
	if fromDay < 1 {
		fromDay = 1
	}
	toDay := day - 1
	if toDay >= fromDay {
		recent, err := a.tasks.ListByDayRange(ctx, userID, fromDay, toDay)
		if err != nil {
			a.logger.Warn("Context assembly: task history read failed, proceeding without it",
				zap.Int("user_id", userID),
				zap.Error(err),
			)
		} else {
			signals.RecentTasks = make([]model.TaskOutcome, 0, len(recent))
			for _, t := range recent {
				signals.RecentTasks = append(signals.RecentTasks, model.TaskOutcome{
					Day:      t.Day,
					Title:    t.Title,
					Category: t.Category,
					Platform: t.Platform,
					Status:   t.Status,
				})
			}
		}
	}

	records, err := a.engagement.ListRecent(ctx, userID, engagementCap)
	if err != nil {
		a.logger.Warn("Context assembly: engagement read failed, proceeding without it",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
	} else {
		signals.Engagement = records
	}

	fb, err := a.feedback.Latest(ctx, userID)
	if err != nil {
		a.logger.Warn("Context assembly: feedback read failed, proceeding without it",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
	} else {
		signals.LatestFeedback = fb
	}

	a.logger.Debug("Context signals assembled",
		zap.Int("user_id", userID),
		zap.Int("day", day),
		zap.Int("recent_tasks", len(signals.RecentTasks)),
		zap.Int("engagement_records", len(signals.Engagement)),
		zap.Bool("has_feedback", signals.LatestFeedback != nil),
	)
	return signals
}
