package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type newsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) repository.NewsRepository {
	return &newsRepository{db: db}
}

const newsColumns = `id, title, content, COALESCE(excerpt, ''), COALESCE(image_url, ''), status, featured, created_at, updated_at`

func (r *newsRepository) Create(ctx context.Context, n *domain.NewsArticle) error {
	query := `INSERT INTO news (title, content, excerpt, image_url, status, featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().UTC().Format(time.RFC3339)
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Status == "" {
		n.Status = domain.NewsStatusDraft
	}
	return r.db.QueryRowContext(ctx, query,
		n.Title, n.Content, n.Excerpt, n.ImageURL, n.Status, n.Featured, n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID)
}

func (r *newsRepository) GetByID(ctx context.Context, id int32) (*domain.NewsArticle, error) {
	n := &domain.NewsArticle{}
	var createdAt, updatedAt time.Time
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.Excerpt, &n.ImageURL, &n.Status, &n.Featured, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	n.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	n.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return n, nil
}

func (r *newsRepository) list(ctx context.Context, query string, args ...any) ([]domain.NewsArticle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.NewsArticle
	for rows.Next() {
		var n domain.NewsArticle
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Excerpt, &n.ImageURL, &n.Status, &n.Featured, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		n.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		n.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
		articles = append(articles, n)
	}
	return articles, rows.Err()
}

func (r *newsRepository) List(ctx context.Context) ([]domain.NewsArticle, error) {
	return r.list(ctx, `SELECT `+newsColumns+` FROM news ORDER BY created_at DESC`)
}

func (r *newsRepository) ListRecent(ctx context.Context, limit int32) ([]domain.NewsArticle, error) {
	return r.list(ctx, `SELECT `+newsColumns+` FROM news ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *newsRepository) Update(ctx context.Context, n *domain.NewsArticle) error {
	query := `UPDATE news SET title=$1, content=$2, excerpt=$3, image_url=$4, status=$5, featured=$6, updated_at=$7 WHERE id=$8`
	n.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, query, n.Title, n.Content, n.Excerpt, n.ImageURL, n.Status, n.Featured, n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *newsRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&count)
	return count, err
}
