package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

const memberColumns = `id, identity_id, email, full_name, COALESCE(phone, ''), COALESCE(date_of_birth, ''),
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(province, ''), COALESCE(postal_code, ''),
	COALESCE(occupation, ''), COALESCE(education_level, ''), COALESCE(contact_preference, ''),
	member_id, role, membership_status, created_at, updated_at`

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO users (identity_id, email, full_name, phone, date_of_birth, address, city, province,
	          postal_code, occupation, education_level, contact_preference, member_id, role, membership_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	now := time.Now().UTC().Format(time.RFC3339)
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Role == "" {
		m.Role = domain.MemberRoleMember
	}
	return r.db.QueryRowContext(ctx, query,
		m.IdentityID, m.Email, m.FullName, m.Phone, m.DateOfBirth, m.Address, m.City, m.Province,
		m.PostalCode, m.Occupation, m.EducationLevel, m.ContactPreference, m.MemberID, m.Role,
		m.MembershipStatus, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *memberRepository) scanMember(row *sql.Row) (*domain.Member, error) {
	m := &domain.Member{}
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&m.ID, &m.IdentityID, &m.Email, &m.FullName, &m.Phone, &m.DateOfBirth,
		&m.Address, &m.City, &m.Province, &m.PostalCode,
		&m.Occupation, &m.EducationLevel, &m.ContactPreference,
		&m.MemberID, &m.Role, &m.MembershipStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	m.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users WHERE id = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users WHERE identity_id = $1`
	return r.scanMember(r.db.QueryRowContext(ctx, query, identityID))
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanMember(r.db.QueryRowContext(ctx, query, email))
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&m.ID, &m.IdentityID, &m.Email, &m.FullName, &m.Phone, &m.DateOfBirth,
			&m.Address, &m.City, &m.Province, &m.PostalCode,
			&m.Occupation, &m.EducationLevel, &m.ContactPreference,
			&m.MemberID, &m.Role, &m.MembershipStatus, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		m.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) UpdateStatus(ctx context.Context, id int32, status domain.MembershipStatus) error {
	query := `UPDATE users SET membership_status = $1, updated_at = $2 WHERE id = $3`
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, query, status, now, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
