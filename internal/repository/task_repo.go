package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"growthplan/internal/model"
	"growthplan/pkg/metrics"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

const taskColumns = `
        id, user_id, title, description, category, platform, status, day,
        type, impact, tips, dedup_key, source, algorithm_version,
        completion_note, skipped_count, completed_at, created_at
`

// InsertIgnoreDuplicate inserts a task, ignoring natural-key collisions
// (user_id, day, dedup_key) from concurrent seeds. Returns whether a row was
// actually inserted.
func (r *TaskRepository) InsertIgnoreDuplicate(ctx context.Context, t *model.Task) (bool, error) {
	start := time.Now()
	r.logger.Debug("Inserting task",
		zap.Int("user_id", t.UserID),
		zap.Int("day", t.Day),
		zap.String("title", t.Title),
		zap.String("source", t.Metadata.Source),
	)
	query := `
        INSERT INTO tasks (
            id, user_id, title, description, category, platform, status, day,
            type, impact, tips, dedup_key, source, algorithm_version, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (user_id, day, dedup_key) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Category,
		t.Platform,
		t.Status,
		t.Day,
		t.Type,
		t.Impact,
		t.Tips,
		t.DedupKey,
		t.Metadata.Source,
		t.Metadata.AlgorithmVersion,
		t.CreatedAt,
	)
	metrics.RecordDBQueryDuration("insert", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("user_id", t.UserID),
			zap.Int("day", t.Day),
		)
		return false, err
	}
	inserted := tag.RowsAffected() > 0
	if inserted {
		r.logger.Info("Task inserted successfully",
			zap.String("task_id", t.ID),
			zap.Int("user_id", t.UserID),
			zap.Int("day", t.Day),
		)
	}
	return inserted, nil
}

func (r *TaskRepository) ListByDay(ctx context.Context, userID, day int) ([]model.Task, error) {
	query := `
        SELECT ` + taskColumns + `
        FROM tasks
        WHERE user_id = $1 AND day = $2
        ORDER BY created_at ASC
    `
	return r.list(ctx, query, userID, day)
}

// ListByWeek selects by the derived day range; week is never stored.
func (r *TaskRepository) ListByWeek(ctx context.Context, userID, week int) ([]model.Task, error) {
	firstDay := model.FirstDayOfWeek(week)
	return r.ListByDayRange(ctx, userID, firstDay, firstDay+6)
}

func (r *TaskRepository) ListByDayRange(ctx context.Context, userID, fromDay, toDay int) ([]model.Task, error) {
	query := `
        SELECT ` + taskColumns + `
        FROM tasks
        WHERE user_id = $1 AND day BETWEEN $2 AND $3
        ORDER BY day ASC, created_at ASC
    `
	return r.list(ctx, query, userID, fromDay, toDay)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	metrics.RecordDBQueryDuration("select", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.Platform,
			&t.Status,
			&t.Day,
			&t.Type,
			&t.Impact,
			&t.Tips,
			&t.DedupKey,
			&t.Metadata.Source,
			&t.Metadata.AlgorithmVersion,
			&t.CompletionNote,
			&t.SkippedCount,
			&t.CompletedAt,
			&t.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns a single task owned by the user.
func (r *TaskRepository) Get(ctx context.Context, userID int, taskID string) (*model.Task, error) {
	query := `
        SELECT ` + taskColumns + `
        FROM tasks
        WHERE user_id = $1 AND id = $2
    `
	tasks, err := r.list(ctx, query, userID, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// MarkCompleted sets status=completed with an optional completion note.
// Only pending tasks transition.
func (r *TaskRepository) MarkCompleted(ctx context.Context, userID int, taskID, note string) (bool, error) {
	start := time.Now()
	r.logger.Debug("Marking task as completed",
		zap.Int("user_id", userID),
		zap.String("task_id", taskID),
	)
	query := `
        UPDATE tasks
        SET status = 'completed', completed_at = NOW(), completion_note = $3
        WHERE user_id = $1 AND id = $2 AND status = 'pending'
    `
	tag, err := r.db.Exec(ctx, query, userID, taskID, note)
	metrics.RecordDBQueryDuration("update", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to mark task as completed",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSkipped sets status=skipped and bumps the skip counter.
func (r *TaskRepository) MarkSkipped(ctx context.Context, userID int, taskID string) (bool, error) {
	start := time.Now()
	r.logger.Debug("Marking task as skipped",
		zap.Int("user_id", userID),
		zap.String("task_id", taskID),
	)
	query := `
        UPDATE tasks
        SET status = 'skipped', skipped_count = skipped_count + 1
        WHERE user_id = $1 AND id = $2 AND status = 'pending'
    `
	tag, err := r.db.Exec(ctx, query, userID, taskID)
	metrics.RecordDBQueryDuration("update", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to mark task as skipped",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a task. Only user-initiated; tasks are never deleted
// automatically.
func (r *TaskRepository) Delete(ctx context.Context, userID int, taskID string) (bool, error) {
	start := time.Now()
	query := `DELETE FROM tasks WHERE user_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, userID, taskID)
	metrics.RecordDBQueryDuration("delete", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to delete task",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return false, err
	}
	r.logger.Info("Task deleted",
		zap.Int("user_id", userID),
		zap.String("task_id", taskID),
	)
	return tag.RowsAffected() > 0, nil
}
