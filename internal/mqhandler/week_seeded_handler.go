package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "growthplan/contracts/mq"
	"growthplan/internal/model"
	"growthplan/internal/repository"
	"growthplan/pkg/util"
)

type WeekSeededHandler struct {
	repo    *repository.NotificationRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewWeekSeededHandler(
	repo *repository.NotificationRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *WeekSeededHandler {
	return &WeekSeededHandler{
		repo:    repo,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *WeekSeededHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.WeekSeededPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal WeekSeededPayload", zap.Error(err))
		return err
	}

	dedupKey := fmt.Sprintf("%d:%d", p.UserID, p.Week)
	if !h.deduper.AcquireOnce(ctx, "week_seeded_notify", dedupKey) {
		h.logger.Info("Duplicate plan.week.seeded event, skipping",
			zap.Int("user_id", p.UserID),
			zap.Int("week", p.Week),
		)
		return nil
	}

	h.logger.Info("Handling plan.week.seeded event",
		zap.Int("user_id", p.UserID),
		zap.Int("week", p.Week),
		zap.Int("task_count", p.TaskCount),
	)

	n := &model.Notification{
		UserID:  p.UserID,
		Type:    "week_seeded",
		Content: fmt.Sprintf("Your plan for week %d is ready with %d new tasks.", p.Week, p.TaskCount),
	}
	if err := h.repo.Insert(ctx, n); err != nil {
		h.logger.Error("Failed to insert week seeded notification", zap.Error(err))
		return err
	}

	return nil
}
