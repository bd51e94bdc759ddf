package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"acme-be/internal/entities"
	"acme-be/internal/models"

	"github.com/google/uuid"
)

const bookmarkColumns = `id, user_id, url, rating, category, created_at, updated_at`

type bookmarkRepository struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *sql.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *entities.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, user_id, url, rating, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.URL,
		bookmark.Rating,
		bookmark.Category,
	).Scan(&bookmark.CreatedAt, &bookmark.UpdatedAt)
	if err != nil {
		return translateError("bookmark", "create", err)
	}
	return nil
}

func (r *bookmarkRepository) Update(ctx context.Context, bookmark *entities.Bookmark) error {
	query := `
		UPDATE bookmarks SET url = $2, rating = $3, category = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		bookmark.ID,
		bookmark.URL,
		bookmark.Rating,
		bookmark.Category,
	).Scan(&bookmark.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("bookmark")
	}
	if err != nil {
		return translateError("bookmark", "update", err)
	}
	return nil
}

func (r *bookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	err := r.db.QueryRowContext(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1`, id).
		Scan(bookmarkScanTargets(&bookmark)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("bookmark")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1 ORDER BY category, created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*entities.Bookmark{}
	for rows.Next() {
		var bookmark entities.Bookmark
		if err := rows.Scan(bookmarkScanTargets(&bookmark)...); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, &bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

func (r *bookmarkRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return rowsAffected(result, "bookmark")
}

func bookmarkScanTargets(bookmark *entities.Bookmark) []any {
	return []any{
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.URL,
		&bookmark.Rating,
		&bookmark.Category,
		&bookmark.CreatedAt,
		&bookmark.UpdatedAt,
	}
}
