package repository

import (
	"context"
	"database/sql"
	"fmt"

	"acme-be/internal/entities"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entities.Product) error {
	query := `
		INSERT INTO products (id, name, description, suggested_price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.SuggestedPrice,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return translateError("product", "create", err)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]*entities.Product, error) {
	query := `
		SELECT id, name, description, suggested_price, created_at, updated_at
		FROM products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		var product entities.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.SuggestedPrice,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

type offeringRepository struct {
	db *sql.DB
}

// NewOfferingRepository creates a new company product repository
func NewOfferingRepository(db *sql.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) Create(ctx context.Context, offering *entities.CompanyProduct) error {
	query := `
		INSERT INTO company_products (id, company_id, product_id, price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		offering.ID,
		offering.CompanyID,
		offering.ProductID,
		offering.Price,
	).Scan(&offering.CreatedAt, &offering.UpdatedAt)
	if err != nil {
		return translateError("offering", "create", err)
	}
	return nil
}

func (r *offeringRepository) List(ctx context.Context) ([]*entities.CompanyProduct, error) {
	query := `
		SELECT id, company_id, product_id, price, created_at, updated_at
		FROM company_products
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerings: %w", err)
	}
	defer rows.Close()

	offerings := []*entities.CompanyProduct{}
	for rows.Next() {
		var offering entities.CompanyProduct
		err := rows.Scan(
			&offering.ID,
			&offering.CompanyID,
			&offering.ProductID,
			&offering.Price,
			&offering.CreatedAt,
			&offering.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offering: %w", err)
		}
		offerings = append(offerings, &offering)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offerings: %w", err)
	}
	return offerings, nil
}
