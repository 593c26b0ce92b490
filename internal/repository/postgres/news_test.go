package postgres

import (
	"context"
	"testing"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "content", "excerpt", "image_url", "status", "featured", "created_at", "updated_at",
	})
}

func TestNewsRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNewsRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO news").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(5)))

		article := &domain.NewsArticle{Title: "Congress announced", Content: "Details inside"}
		err := repo.Create(ctx, article)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), article.ID)
		assert.Equal(t, domain.NewsStatusDraft, article.Status)
	})
}

func TestNewsRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNewsRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := newsRows().AddRow(
			5, "Congress announced", "Details inside", "", "", "published", true, time.Now(), time.Now(),
		)
		mock.ExpectQuery("SELECT (.+) FROM news WHERE id = \\$1").
			WithArgs(int32(5)).
			WillReturnRows(rows)

		article, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, "Congress announced", article.Title)
		assert.True(t, article.Featured)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM news WHERE id = \\$1").
			WithArgs(int32(6)).
			WillReturnRows(newsRows())

		_, err := repo.GetByID(ctx, 6)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestNewsRepository_ListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNewsRepository(db)
	ctx := context.Background()

	rows := newsRows().
		AddRow(2, "Second", "b", "", "", "published", false, time.Now(), time.Now()).
		AddRow(1, "First", "a", "", "", "published", false, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM news ORDER BY created_at DESC LIMIT \\$1").
		WithArgs(int32(5)).
		WillReturnRows(rows)

	articles, err := repo.ListRecent(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "Second", articles[0].Title)
}

func TestNewsRepository_UpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewNewsRepository(db)
	ctx := context.Background()

	t.Run("UpdateNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE news SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.NewsArticle{ID: 99, Title: "x", Content: "y"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("DeleteSuccess", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM news WHERE id = \\$1").
			WithArgs(int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 5))
	})
}
