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

// Default projection leaves bio out
const userColumns = `id, first_name, middle_name, last_name, email, title, avatar, company_id, created_at, updated_at`

const userSearchWhere = `
	WHERE first_name ILIKE $1
	OR last_name ILIKE $1
	OR middle_name ILIKE $1
	OR email ILIKE $1
	OR title ILIKE $1
`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, first_name, middle_name, last_name, email, title, avatar, bio, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.Email,
		user.Title,
		user.Avatar,
		user.Bio,
		user.CompanyID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateError("user", "create", err)
	}

	return nil
}

// Update writes every mutable user field, bio included
func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	query := `
		UPDATE users SET
			first_name = $2,
			middle_name = $3,
			last_name = $4,
			email = $5,
			title = $6,
			avatar = $7,
			bio = $8,
			company_id = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.Email,
		user.Title,
		user.Avatar,
		user.Bio,
		user.CompanyID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("user")
	}
	if err != nil {
		return translateError("user", "update", err)
	}

	return nil
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID, withBio bool) (*entities.User, error) {
	columns := userColumns
	if withBio {
		columns += ", bio"
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, columns)

	var user entities.User
	dest := userScanTargets(&user)
	if withBio {
		dest = append(dest, &user.Bio)
	}

	err := r.db.QueryRowContext(ctx, query, id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// Count returns how many users match the search term (empty matches all)
func (r *userRepository) Count(ctx context.Context, term string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+userSearchWhere, likePattern(term)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Search returns one page of matching users ordered by first then last name
func (r *userRepository) Search(ctx context.Context, term string, limit, offset int) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users` + userSearchWhere + `
		ORDER BY first_name, last_name, id
		LIMIT $2 OFFSET $3
	`
	return r.query(ctx, query, likePattern(term), limit, offset)
}

// ListByCompany retrieves all users employed by a company
func (r *userRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY first_name, last_name`
	return r.query(ctx, query, companyID)
}

// Random picks any user
func (r *userRepository) Random(ctx context.Context) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY random() LIMIT 1`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query).Scan(userScanTargets(&user)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) query(ctx context.Context, query string, args ...any) ([]*entities.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(userScanTargets(&user)...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func userScanTargets(user *entities.User) []any {
	return []any{
		&user.ID,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.Email,
		&user.Title,
		&user.Avatar,
		&user.CompanyID,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
}
