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

type followingCompanyRepository struct {
	db *sql.DB
}

// NewFollowingCompanyRepository creates a new following company repository
func NewFollowingCompanyRepository(db *sql.DB) FollowingCompanyRepository {
	return &followingCompanyRepository{db: db}
}

func (r *followingCompanyRepository) Create(ctx context.Context, following *entities.FollowingCompany) error {
	query := `
		INSERT INTO following_companies (id, user_id, company_id, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		following.ID,
		following.UserID,
		following.CompanyID,
		following.Rating,
	).Scan(&following.CreatedAt, &following.UpdatedAt)
	if err != nil {
		return translateError("following company", "create", err)
	}
	return nil
}

func (r *followingCompanyRepository) Update(ctx context.Context, following *entities.FollowingCompany) error {
	query := `
		UPDATE following_companies SET company_id = $2, rating = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query, following.ID, following.CompanyID, following.Rating).
		Scan(&following.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("following company")
	}
	if err != nil {
		return translateError("following company", "update", err)
	}
	return nil
}

func (r *followingCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.FollowingCompany, error) {
	query := `
		SELECT id, user_id, company_id, rating, created_at, updated_at
		FROM following_companies
		WHERE id = $1
	`

	var following entities.FollowingCompany
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&following.ID,
		&following.UserID,
		&following.CompanyID,
		&following.Rating,
		&following.CreatedAt,
		&following.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("following company")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find following company: %w", err)
	}
	return &following, nil
}

func (r *followingCompanyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.FollowingCompany, error) {
	query := `
		SELECT id, user_id, company_id, rating, created_at, updated_at
		FROM following_companies
		WHERE user_id = $1
		ORDER BY rating DESC, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following companies: %w", err)
	}
	defer rows.Close()

	followings := []*entities.FollowingCompany{}
	for rows.Next() {
		var following entities.FollowingCompany
		err := rows.Scan(
			&following.ID,
			&following.UserID,
			&following.CompanyID,
			&following.Rating,
			&following.CreatedAt,
			&following.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan following company: %w", err)
		}
		followings = append(followings, &following)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating following companies: %w", err)
	}
	return followings, nil
}

func (r *followingCompanyRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM following_companies WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count following companies: %w", err)
	}
	return count, nil
}

func (r *followingCompanyRepository) PairExists(ctx context.Context, userID, companyID, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM following_companies
			WHERE user_id = $1 AND company_id = $2 AND id <> $3
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, companyID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check following company: %w", err)
	}
	return exists, nil
}

func (r *followingCompanyRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM following_companies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete following company: %w", err)
	}
	return rowsAffected(result, "following company")
}
