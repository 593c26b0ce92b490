package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"

	"github.com/lib/pq"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (member_id, membership_type, amount_cents, currency, payment_status, payment_date, payment_session_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRowContext(ctx, query,
		m.MemberID, m.MembershipType, m.AmountCents, m.Currency,
		m.PaymentStatus, m.PaymentDate, m.PaymentSessionID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		// memberships.payment_session_id carries a unique index; a collision
		// means this session was already processed, not a hard failure.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicateSession
		}
		return err
	}
	return nil
}

func (r *membershipRepository) scan(row *sql.Row) (*domain.Membership, error) {
	m := &domain.Membership{}
	var createdAt time.Time
	err := row.Scan(&m.ID, &m.MemberID, &m.MembershipType, &m.AmountCents, &m.Currency,
		&m.PaymentStatus, &m.PaymentDate, &m.PaymentSessionID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return m, nil
}

func (r *membershipRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Membership, error) {
	query := `SELECT id, member_id, membership_type, amount_cents, currency, payment_status, COALESCE(payment_date, ''), COALESCE(payment_session_id, ''), created_at
	          FROM memberships WHERE payment_session_id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, sessionID))
}

func (r *membershipRepository) LatestByMember(ctx context.Context, memberID int32) (*domain.Membership, error) {
	query := `SELECT id, member_id, membership_type, amount_cents, currency, payment_status, COALESCE(payment_date, ''), COALESCE(payment_session_id, ''), created_at
	          FROM memberships WHERE member_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scan(r.db.QueryRowContext(ctx, query, memberID))
}

func (r *membershipRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Membership, error) {
	query := `SELECT id, member_id, membership_type, amount_cents, currency, payment_status, COALESCE(payment_date, ''), COALESCE(payment_session_id, ''), created_at
	          FROM memberships WHERE member_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var createdAt time.Time
		if err := rows.Scan(&m.ID, &m.MemberID, &m.MembershipType, &m.AmountCents, &m.Currency,
			&m.PaymentStatus, &m.PaymentDate, &m.PaymentSessionID, &createdAt); err != nil {
			return nil, err
		}
		m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) CompletedRevenueCents(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM memberships WHERE payment_status = 'completed'`
	var total int64
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}
