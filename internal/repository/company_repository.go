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

const companyColumns = `id, name, phone, state, catch_phrase, created_at, updated_at`

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entities.Company) error {
	query := `
		INSERT INTO companies (id, name, phone, state, catch_phrase)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		company.ID,
		company.Name,
		company.Phone,
		company.State,
		company.CatchPhrase,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return translateError("company", "create", err)
	}
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var company entities.Company
	err := r.db.QueryRowContext(ctx, query, id).Scan(companyScanTargets(&company)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("company")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]*entities.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	defer rows.Close()

	companies := []*entities.Company{}
	for rows.Next() {
		var company entities.Company
		if err := rows.Scan(companyScanTargets(&company)...); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, nil
}

func (r *companyRepository) Random(ctx context.Context) (*entities.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY random() LIMIT 1`

	var company entities.Company
	err := r.db.QueryRowContext(ctx, query).Scan(companyScanTargets(&company)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("company")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random company: %w", err)
	}
	return &company, nil
}

func companyScanTargets(company *entities.Company) []any {
	return []any{
		&company.ID,
		&company.Name,
		&company.Phone,
		&company.State,
		&company.CatchPhrase,
		&company.CreatedAt,
		&company.UpdatedAt,
	}
}

type companyProfitRepository struct {
	db *sql.DB
}

// NewCompanyProfitRepository creates a new company profit repository
func NewCompanyProfitRepository(db *sql.DB) CompanyProfitRepository {
	return &companyProfitRepository{db: db}
}

func (r *companyProfitRepository) Create(ctx context.Context, profit *entities.CompanyProfit) error {
	query := `
		INSERT INTO company_profits (id, company_id, fiscal_year, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		profit.ID,
		profit.CompanyID,
		profit.FiscalYear.UTC(),
		profit.Amount,
	).Scan(&profit.CreatedAt, &profit.UpdatedAt)
	if err != nil {
		return translateError("company profit", "create", err)
	}
	return nil
}

func (r *companyProfitRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entities.CompanyProfit, error) {
	query := `
		SELECT id, company_id, fiscal_year, amount, created_at, updated_at
		FROM company_profits
		WHERE company_id = $1
		ORDER BY fiscal_year DESC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company profits: %w", err)
	}
	defer rows.Close()

	profits := []*entities.CompanyProfit{}
	for rows.Next() {
		var profit entities.CompanyProfit
		err := rows.Scan(
			&profit.ID,
			&profit.CompanyID,
			&profit.FiscalYear,
			&profit.Amount,
			&profit.CreatedAt,
			&profit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company profit: %w", err)
		}
		profits = append(profits, &profit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company profits: %w", err)
	}
	return profits, nil
}
