package models

// Update requests use pointer fields so that only the fields present in the
// payload are applied.

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	MiddleName string  `json:"middleName"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Title      string  `json:"title"`
	Avatar     string  `json:"avatar"`
	CompanyID  *string `json:"companyId,omitempty" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Title      *string `json:"title"`
	Avatar     *string `json:"avatar"`
	CompanyID  *string `json:"companyId" binding:"omitempty,uuid"`
}

// CreateCompanyRequest represents the request body for creating a company
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	State       string `json:"state"`
	CatchPhrase string `json:"catchPhrase"`
}

// NoteRequest is used for both note creation and partial updates
type NoteRequest struct {
	Text     *string `json:"text"`
	Archived *bool   `json:"archived"`
}

type BookmarkRequest struct {
	URL      *string `json:"url"`
	Rating   *int    `json:"rating"`
	Category *string `json:"category"`
}

type VacationRequest struct {
	StartDate *Date `json:"startDate"`
	EndDate   *Date `json:"endDate"`
}

type FollowingCompanyRequest struct {
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
	Rating    *int    `json:"rating"`
}
