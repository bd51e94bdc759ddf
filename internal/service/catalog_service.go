package service

import (
	"context"

	"acme-be/internal/entities"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

// CatalogService exposes products and the companies offering them
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*entities.Product, error)
	ListOfferings(ctx context.Context) ([]*entities.CompanyProduct, error)
	CreateProduct(ctx context.Context, name, description string, suggestedPrice float64) (*entities.Product, error)
	CreateOffering(ctx context.Context, companyID, productID uuid.UUID, price float64) (*entities.CompanyProduct, error)
}

type catalogService struct {
	products  repository.ProductRepository
	offerings repository.OfferingRepository
}

func NewCatalogService(products repository.ProductRepository, offerings repository.OfferingRepository) CatalogService {
	return &catalogService{products: products, offerings: offerings}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.products.List(ctx)
}

func (s *catalogService) ListOfferings(ctx context.Context) ([]*entities.CompanyProduct, error) {
	return s.offerings.List(ctx)
}

func (s *catalogService) CreateProduct(ctx context.Context, name, description string, suggestedPrice float64) (*entities.Product, error) {
	product := &entities.Product{
		ID:             uuid.New(),
		Name:           name,
		Description:    description,
		SuggestedPrice: suggestedPrice,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateOffering(ctx context.Context, companyID, productID uuid.UUID, price float64) (*entities.CompanyProduct, error) {
	offering := &entities.CompanyProduct{
		ID:        uuid.New(),
		CompanyID: companyID,
		ProductID: productID,
		Price:     price,
	}
	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}
