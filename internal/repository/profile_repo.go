package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"growthplan/internal/model"
)

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

func (r *ProfileRepository) Get(ctx context.Context, userID int) (*model.BusinessProfile, error) {
	query := `
        SELECT user_id, product_name, value_prop, target_audience, focus_area,
               goals, milestones, preferred_platforms, avoid_platforms,
               researched_platforms, desired_daily_tasks, updated_at
        FROM business_profiles
        WHERE user_id = $1
    `
	var p model.BusinessProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.ProductName,
		&p.ValueProp,
		&p.TargetAudience,
		&p.FocusArea,
		&p.Goals,
		&p.Milestones,
		&p.PreferredPlatforms,
		&p.AvoidPlatforms,
		&p.ResearchedPlatforms,
		&p.DesiredDailyTasks,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query business profile",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *model.BusinessProfile) error {
	r.logger.Debug("Upserting business profile", zap.Int("user_id", p.UserID))
	query := `
        INSERT INTO business_profiles (
            user_id, product_name, value_prop, target_audience, focus_area,
            goals, milestones, preferred_platforms, avoid_platforms,
            researched_platforms, desired_daily_tasks, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            product_name = EXCLUDED.product_name,
            value_prop = EXCLUDED.value_prop,
            target_audience = EXCLUDED.target_audience,
            focus_area = EXCLUDED.focus_area,
            goals = EXCLUDED.goals,
            milestones = EXCLUDED.milestones,
            preferred_platforms = EXCLUDED.preferred_platforms,
            avoid_platforms = EXCLUDED.avoid_platforms,
            researched_platforms = EXCLUDED.researched_platforms,
            desired_daily_tasks = EXCLUDED.desired_daily_tasks,
            updated_at = NOW()
    `
	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.ProductName,
		p.ValueProp,
		p.TargetAudience,
		p.FocusArea,
		p.Goals,
		p.Milestones,
		p.PreferredPlatforms,
		p.AvoidPlatforms,
		p.ResearchedPlatforms,
		p.DesiredDailyTasks,
	)
	if err != nil {
		r.logger.Error("Failed to upsert business profile",
			zap.Int("user_id", p.UserID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Business profile saved", zap.Int("user_id", p.UserID))
	return nil
}

// AddAvoidPlatform appends a platform to the accumulated avoid list.
func (r *ProfileRepository) AddAvoidPlatform(ctx context.Context, userID int, platform string) error {
	query := `
        UPDATE business_profiles
        SET avoid_platforms = array_append(avoid_platforms, $2), updated_at = NOW()
        WHERE user_id = $1 AND NOT ($2 = ANY(avoid_platforms))
    `
	_, err := r.db.Exec(ctx, query, userID, platform)
	if err != nil {
		r.logger.Error("Failed to add avoid platform",
			zap.Int("user_id", userID),
			zap.String("platform", platform),
			zap.Error(err),
		)
		return err
	}
	return nil
}
