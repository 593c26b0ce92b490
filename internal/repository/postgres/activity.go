package postgres

import (
	"context"
	"database/sql"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.UserActivity) error {
	query := `INSERT INTO user_activities (member_id, activity_type, details, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.QueryRowContext(ctx, query, a.MemberID, a.ActivityType, a.Details, a.CreatedAt).Scan(&a.ID)
}

func (r *activityRepository) ListByMember(ctx context.Context, memberID int32, limit int32) ([]domain.UserActivity, error) {
	query := `SELECT id, member_id, activity_type, COALESCE(details, ''), created_at FROM user_activities
	          WHERE member_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.UserActivity
	for rows.Next() {
		var a domain.UserActivity
		var createdAt time.Time
		if err := rows.Scan(&a.ID, &a.MemberID, &a.ActivityType, &a.Details, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int32) ([]domain.UserActivity, error) {
	query := `SELECT id, member_id, activity_type, COALESCE(details, ''), created_at FROM user_activities
	          ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.UserActivity
	for rows.Next() {
		var a domain.UserActivity
		var createdAt time.Time
		if err := rows.Scan(&a.ID, &a.MemberID, &a.ActivityType, &a.Details, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
