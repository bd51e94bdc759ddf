package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a user entity in the database
type User struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Title      string     `json:"title"`
	Avatar     string     `json:"avatar"`
	Bio        string     `json:"bio,omitempty"`       // Only populated by detail lookups
	CompanyID  *uuid.UUID `json:"companyId,omitempty"` // Pointer allows nil (user without a company)
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// FullName is derived from the name fields and never stored
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// MarshalJSON adds the derived fullName field to the JSON representation
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return json.Marshal(struct {
		plain
		FullName string `json:"fullName"`
	}{
		plain:    plain(u),
		FullName: u.FullName(),
	})
}
