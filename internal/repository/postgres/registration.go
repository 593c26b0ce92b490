package postgres

import (
	"context"
	"database/sql"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type eventRegistrationRepository struct {
	db *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) repository.EventRegistrationRepository {
	return &eventRegistrationRepository{db: db}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `INSERT INTO event_registrations (member_id, event_id, status, registration_date)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	reg.RegistrationDate = time.Now().UTC().Format(time.RFC3339)
	if reg.Status == "" {
		reg.Status = "registered"
	}
	return r.db.QueryRowContext(ctx, query, reg.MemberID, reg.EventID, reg.Status, reg.RegistrationDate).Scan(&reg.ID)
}

func (r *eventRegistrationRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.EventRegistration, error) {
	query := `SELECT id, member_id, event_id, status, registration_date FROM event_registrations WHERE member_id = $1 ORDER BY registration_date DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.EventRegistration
	for rows.Next() {
		var reg domain.EventRegistration
		var registeredOn time.Time
		if err := rows.Scan(&reg.ID, &reg.MemberID, &reg.EventID, &reg.Status, &registeredOn); err != nil {
			return nil, err
		}
		reg.RegistrationDate = registeredOn.UTC().Format(time.RFC3339)
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *eventRegistrationRepository) CountByEvent(ctx context.Context, eventID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

func (r *eventRegistrationRepository) ExistsForMemberAndEvent(ctx context.Context, memberID, eventID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM event_registrations WHERE member_id = $1 AND event_id = $2)`,
		memberID, eventID).Scan(&exists)
	return exists, err
}
