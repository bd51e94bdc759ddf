package models

import "acme-be/internal/entities"

// UserPage represents one page of a user listing or search
type UserPage struct {
	Count int              `json:"count"`
	Users []*entities.User `json:"users"`
}
