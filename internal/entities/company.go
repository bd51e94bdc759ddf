package entities

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company entity in the database
type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	State       string    `json:"state"`
	CatchPhrase string    `json:"catchPhrase"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanyProfit is a yearly profit record, only created alongside its company
type CompanyProfit struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"companyId"`
	FiscalYear time.Time `json:"fiscalYear"` // End of the fiscal year
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
