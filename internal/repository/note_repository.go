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

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *entities.Note) error {
	query := `
		INSERT INTO notes (id, user_id, text, archived)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, note.ID, note.UserID, note.Text, note.Archived).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return translateError("note", "create", err)
	}
	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *entities.Note) error {
	query := `
		UPDATE notes SET text = $2, archived = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query, note.ID, note.Text, note.Archived).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("note")
	}
	if err != nil {
		return translateError("note", "update", err)
	}
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	query := `
		SELECT id, user_id, text, archived, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	var note entities.Note
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.UserID,
		&note.Text,
		&note.Archived,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("note")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

// ListByUser retrieves all notes for a specific user
func (r *noteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	query := `
		SELECT id, user_id, text, archived, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	defer rows.Close()

	notes := []*entities.Note{}
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Text,
			&note.Archived,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// DeleteForUser removes a note only if it belongs to userID
func (r *noteRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete note: %w", err)
	}
	return rowsAffected(result, "note")
}
