package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"growthplan/internal/model"
)

type EngagementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEngagementRepository(db *pgxpool.Pool, logger *zap.Logger) *EngagementRepository {
	return &EngagementRepository{db: db, logger: logger}
}

func (r *EngagementRepository) Insert(ctx context.Context, rec *model.EngagementRecord) (int, error) {
	query := `
        INSERT INTO engagement_records (user_id, platform, content_type, views, likes, replies)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		rec.UserID,
		rec.Platform,
		rec.ContentType,
		rec.Views,
		rec.Likes,
		rec.Replies,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert engagement record",
			zap.Int("user_id", rec.UserID),
			zap.Error(err),
		)
		return 0, err
	}
	return id, nil
}

func (r *EngagementRepository) ListRecent(ctx context.Context, userID, limit int) ([]model.EngagementRecord, error) {
	query := `
        SELECT id, user_id, platform, content_type, views, likes, replies, created_at
        FROM engagement_records
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to query engagement records",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	records := []model.EngagementRecord{}
	for rows.Next() {
		var rec model.EngagementRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Platform,
			&rec.ContentType,
			&rec.Views,
			&rec.Likes,
			&rec.Replies,
			&rec.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan engagement row", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
