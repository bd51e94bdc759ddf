package entities

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product entity in the database
type Product struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SuggestedPrice float64   `json:"suggestedPrice"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CompanyProduct is a company's offering of a product at its own price
type CompanyProduct struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	ProductID uuid.UUID `json:"productId"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
