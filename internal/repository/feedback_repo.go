package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"growthplan/internal/model"
)

type FeedbackRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeedbackRepository(db *pgxpool.Pool, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{db: db, logger: logger}
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *model.WeeklyFeedback) (int, error) {
	query := `
        INSERT INTO weekly_feedback (user_id, week, went_well, struggled, next_focus)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		fb.UserID,
		fb.Week,
		fb.WentWell,
		fb.Struggled,
		fb.NextFocus,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert weekly feedback",
			zap.Int("user_id", fb.UserID),
			zap.Int("week", fb.Week),
			zap.Error(err),
		)
		return 0, err
	}
	r.logger.Info("Weekly feedback saved",
		zap.Int("user_id", fb.UserID),
		zap.Int("week", fb.Week),
	)
	return id, nil
}

// Latest returns the single most recent feedback record, or nil.
func (r *FeedbackRepository) Latest(ctx context.Context, userID int) (*model.WeeklyFeedback, error) {
	query := `
        SELECT id, user_id, week, went_well, struggled, next_focus, created_at
        FROM weekly_feedback
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	var fb model.WeeklyFeedback
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&fb.ID,
		&fb.UserID,
		&fb.Week,
		&fb.WentWell,
		&fb.Struggled,
		&fb.NextFocus,
		&fb.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query weekly feedback",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return &fb, nil
}
