package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, COALESCE(short_description, ''), start_date, end_date, COALESCE(location, ''),
	max_participants, registration_required, COALESCE(registration_deadline, ''), status, featured, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (title, description, short_description, start_date, end_date, location,
	          max_participants, registration_required, registration_deadline, status, featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now().UTC().Format(time.RFC3339)
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = domain.EventStatusUpcoming
	}
	return r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.ShortDescription, e.StartDate, e.EndDate, e.Location,
		e.MaxParticipants, e.RegistrationRequired, e.RegistrationDeadline, e.Status, e.Featured,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) scanRow(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var createdAt, updatedAt time.Time
	var maxParticipants sql.NullInt32
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.ShortDescription, &e.StartDate, &e.EndDate,
		&e.Location, &maxParticipants, &e.RegistrationRequired, &e.RegistrationDeadline,
		&e.Status, &e.Featured, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if maxParticipants.Valid {
		e.MaxParticipants = &maxParticipants.Int32
	}
	e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	e.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdAt, updatedAt time.Time
		var maxParticipants sql.NullInt32
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.ShortDescription, &e.StartDate, &e.EndDate,
			&e.Location, &maxParticipants, &e.RegistrationRequired, &e.RegistrationDeadline,
			&e.Status, &e.Featured, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if maxParticipants.Valid {
			e.MaxParticipants = &maxParticipants.Int32
		}
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		e.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date ASC`)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from string, limit int32) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE start_date >= $1 AND status != 'cancelled' ORDER BY start_date ASC LIMIT $2`, from, limit)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title=$1, description=$2, short_description=$3, start_date=$4, end_date=$5, location=$6,
	          max_participants=$7, registration_required=$8, registration_deadline=$9, status=$10, featured=$11, updated_at=$12 WHERE id=$13`
	e.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.ShortDescription, e.StartDate, e.EndDate, e.Location,
		e.MaxParticipants, e.RegistrationRequired, e.RegistrationDeadline, e.Status, e.Featured,
		e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *eventRepository) CountUpcoming(ctx context.Context, from string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE start_date >= $1 AND status != 'cancelled'`, from).Scan(&count)
	return count, err
}

// SweepStatuses advances upcoming events whose start date has passed to
// ongoing, and ongoing events whose end date has passed to completed.
// Cancelled events are left alone.
func (r *eventRepository) SweepStatuses(ctx context.Context, now string) (int64, error) {
	var total int64

	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET status = 'ongoing', updated_at = $1 WHERE status = 'upcoming' AND start_date <= $1 AND end_date > $1`, now)
	if err != nil {
		return total, err
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	res, err = r.db.ExecContext(ctx,
		`UPDATE events SET status = 'completed', updated_at = $1 WHERE status IN ('upcoming', 'ongoing') AND end_date <= $1`, now)
	if err != nil {
		return total, err
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	return total, nil
}
