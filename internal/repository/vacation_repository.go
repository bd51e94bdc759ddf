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

type vacationRepository struct {
	db *sql.DB
}

// NewVacationRepository creates a new vacation repository
func NewVacationRepository(db *sql.DB) VacationRepository {
	return &vacationRepository{db: db}
}

func (r *vacationRepository) Create(ctx context.Context, vacation *entities.Vacation) error {
	query := `
		INSERT INTO vacations (id, user_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		vacation.ID,
		vacation.UserID,
		vacation.StartDate.UTC(),
		vacation.EndDate.UTC(),
	).Scan(&vacation.CreatedAt, &vacation.UpdatedAt)
	if err != nil {
		return translateError("vacation", "create", err)
	}
	return nil
}

func (r *vacationRepository) Update(ctx context.Context, vacation *entities.Vacation) error {
	query := `
		UPDATE vacations SET start_date = $2, end_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		vacation.ID,
		vacation.StartDate.UTC(),
		vacation.EndDate.UTC(),
	).Scan(&vacation.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("vacation")
	}
	if err != nil {
		return translateError("vacation", "update", err)
	}
	return nil
}

func (r *vacationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Vacation, error) {
	query := `
		SELECT id, user_id, start_date, end_date, created_at, updated_at
		FROM vacations
		WHERE id = $1
	`

	var vacation entities.Vacation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vacation.ID,
		&vacation.UserID,
		&vacation.StartDate,
		&vacation.EndDate,
		&vacation.CreatedAt,
		&vacation.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("vacation")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vacation: %w", err)
	}
	return &vacation, nil
}

func (r *vacationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Vacation, error) {
	query := `
		SELECT id, user_id, start_date, end_date, created_at, updated_at
		FROM vacations
		WHERE user_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vacations: %w", err)
	}
	defer rows.Close()

	vacations := []*entities.Vacation{}
	for rows.Next() {
		var vacation entities.Vacation
		err := rows.Scan(
			&vacation.ID,
			&vacation.UserID,
			&vacation.StartDate,
			&vacation.EndDate,
			&vacation.CreatedAt,
			&vacation.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		vacations = append(vacations, &vacation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacations: %w", err)
	}
	return vacations, nil
}

func (r *vacationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vacations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vacations: %w", err)
	}
	return count, nil
}

func (r *vacationRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vacations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vacation: %w", err)
	}
	return rowsAffected(result, "vacation")
}
