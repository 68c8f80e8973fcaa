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

type TaskCompletedHandler struct {
	repo    *repository.NotificationRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewTaskCompletedHandler(
	repo *repository.NotificationRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *TaskCompletedHandler {
	return &TaskCompletedHandler{
		repo:    repo,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *TaskCompletedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.TaskCompletedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal TaskCompletedPayload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "task_completed_notify", p.TaskID) {
		h.logger.Info("Duplicate task.completed event, skipping",
			zap.String("task_id", p.TaskID),
		)
		return nil
	}

	h.logger.Info("Handling task.completed event",
		zap.String("task_id", p.TaskID),
		zap.Int("user_id", p.UserID),
		zap.Int("day", p.Day),
	)

	n := &model.Notification{
		UserID:  p.UserID,
		Type:    "task_completed",
		Content: fmt.Sprintf("Nice work on day %d: %q is done.", p.Day, p.Title),
	}
	if err := h.repo.Insert(ctx, n); err != nil {
		h.logger.Error("Failed to insert task completed notification", zap.Error(err))
		return err
	}

	return nil
}
