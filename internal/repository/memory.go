package repository

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"acme-be/internal/entities"
	"acme-be/internal/models"

	"github.com/google/uuid"
)

// NewMemoryStore creates repositories that keep rows in process memory.
// It is used for tests and when no DATABASE_URL is configured.
func NewMemoryStore() *Store {
	users := newMemTable[entities.User]()
	companies := newMemTable[entities.Company]()
	products := newMemTable[entities.Product]()
	return &Store{
		Users:      &memoryUsers{t: users, companies: companies},
		Companies:  &memoryCompanies{t: companies},
		Profits:    &memoryProfits{t: newMemTable[entities.CompanyProfit](), companies: companies},
		Products:   &memoryProducts{t: products},
		Offerings:  &memoryOfferings{t: newMemTable[entities.CompanyProduct](), companies: companies, products: products},
		Notes:      &memoryNotes{t: newMemTable[entities.Note](), users: users},
		Bookmarks:  &memoryBookmarks{t: newMemTable[entities.Bookmark](), users: users},
		Vacations:  &memoryVacations{t: newMemTable[entities.Vacation](), users: users},
		Followings: &memoryFollowings{t: newMemTable[entities.FollowingCompany](), users: users, companies: companies},
	}
}

// memTable stores copies of rows keyed by id, remembering insertion order
type memTable[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{rows: make(map[uuid.UUID]T)}
}

func (t *memTable[T]) insert(id uuid.UUID, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[id]; exists {
		return false
	}
	t.rows[id] = row
	t.order = append(t.order, id)
	return true
}

func (t *memTable[T]) replace(id uuid.UUID, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[id]; !exists {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *memTable[T]) get(id uuid.UUID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *memTable[T]) has(id uuid.UUID) bool {
	_, ok := t.get(id)
	return ok
}

func (t *memTable[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, id := range t.order {
		if row := t.rows[id]; match == nil || match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *memTable[T]) count(match func(T) bool) int {
	return len(t.filter(match))
}

func (t *memTable[T]) deleteWhere(id uuid.UUID, match func(T) bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok || !match(row) {
		return 0
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(other uuid.UUID) bool { return other == id })
	return 1
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	*created = now
	*updated = now
}

// ---------------- Users ----------------

type memoryUsers struct {
	t         *memTable[entities.User]
	companies *memTable[entities.Company]
}

func (m *memoryUsers) Create(_ context.Context, user *entities.User) error {
	if user.CompanyID != nil && !m.companies.has(*user.CompanyID) {
		return missingReference("user")
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	if !m.t.insert(user.ID, *user) {
		return &models.GuardError{Kind: models.ErrDuplicateRelationship, Entity: "user", Message: "user already exists"}
	}
	return nil
}

func (m *memoryUsers) Update(_ context.Context, user *entities.User) error {
	existing, ok := m.t.get(user.ID)
	if !ok {
		return models.NotFound("user")
	}
	if user.CompanyID != nil && !m.companies.has(*user.CompanyID) {
		return missingReference("user")
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	m.t.replace(user.ID, *user)
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID, withBio bool) (*entities.User, error) {
	user, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("user")
	}
	if !withBio {
		user.Bio = ""
	}
	return &user, nil
}

func (m *memoryUsers) matching(term string) []entities.User {
	term = strings.ToLower(term)
	users := m.t.filter(func(u entities.User) bool {
		for _, field := range []string{u.FirstName, u.LastName, u.MiddleName, u.Email, u.Title} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
	slices.SortFunc(users, func(a, b entities.User) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)),
			cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.ID.String(), b.ID.String()),
		)
	})
	for i := range users {
		users[i].Bio = ""
	}
	return users
}

func (m *memoryUsers) Count(_ context.Context, term string) (int, error) {
	return len(m.matching(term)), nil
}

func (m *memoryUsers) Search(_ context.Context, term string, limit, offset int) ([]*entities.User, error) {
	users := m.matching(term)
	if offset >= len(users) {
		return []*entities.User{}, nil
	}
	end := min(offset+limit, len(users))
	return pointers(users[offset:end]), nil
}

func (m *memoryUsers) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*entities.User, error) {
	users := m.t.filter(func(u entities.User) bool {
		return u.CompanyID != nil && *u.CompanyID == companyID
	})
	for i := range users {
		users[i].Bio = ""
	}
	return pointers(users), nil
}

func (m *memoryUsers) Random(_ context.Context) (*entities.User, error) {
	users := m.t.filter(nil)
	if len(users) == 0 {
		return nil, models.NotFound("user")
	}
	user := users[rand.IntN(len(users))]
	user.Bio = ""
	return &user, nil
}

// ---------------- Companies & catalog ----------------

type memoryCompanies struct{ t *memTable[entities.Company] }

func (m *memoryCompanies) Create(_ context.Context, company *entities.Company) error {
	stamp(&company.CreatedAt, &company.UpdatedAt)
	m.t.insert(company.ID, *company)
	return nil
}

func (m *memoryCompanies) FindByID(_ context.Context, id uuid.UUID) (*entities.Company, error) {
	company, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("company")
	}
	return &company, nil
}

func (m *memoryCompanies) List(_ context.Context) ([]*entities.Company, error) {
	companies := m.t.filter(nil)
	slices.SortFunc(companies, func(a, b entities.Company) int { return cmp.Compare(a.Name, b.Name) })
	return pointers(companies), nil
}

func (m *memoryCompanies) Random(_ context.Context) (*entities.Company, error) {
	companies := m.t.filter(nil)
	if len(companies) == 0 {
		return nil, models.NotFound("company")
	}
	company := companies[rand.IntN(len(companies))]
	return &company, nil
}

type memoryProfits struct {
	t         *memTable[entities.CompanyProfit]
	companies *memTable[entities.Company]
}

func (m *memoryProfits) Create(_ context.Context, profit *entities.CompanyProfit) error {
	if !m.companies.has(profit.CompanyID) {
		return missingReference("company profit")
	}
	stamp(&profit.CreatedAt, &profit.UpdatedAt)
	m.t.insert(profit.ID, *profit)
	return nil
}

func (m *memoryProfits) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*entities.CompanyProfit, error) {
	profits := m.t.filter(func(p entities.CompanyProfit) bool { return p.CompanyID == companyID })
	slices.SortFunc(profits, func(a, b entities.CompanyProfit) int { return b.FiscalYear.Compare(a.FiscalYear) })
	return pointers(profits), nil
}

type memoryProducts struct{ t *memTable[entities.Product] }

func (m *memoryProducts) Create(_ context.Context, product *entities.Product) error {
	stamp(&product.CreatedAt, &product.UpdatedAt)
	m.t.insert(product.ID, *product)
	return nil
}

func (m *memoryProducts) List(_ context.Context) ([]*entities.Product, error) {
	products := m.t.filter(nil)
	slices.SortFunc(products, func(a, b entities.Product) int { return cmp.Compare(a.Name, b.Name) })
	return pointers(products), nil
}

type memoryOfferings struct {
	t         *memTable[entities.CompanyProduct]
	companies *memTable[entities.Company]
	products  *memTable[entities.Product]
}

func (m *memoryOfferings) Create(_ context.Context, offering *entities.CompanyProduct) error {
	if !m.companies.has(offering.CompanyID) || !m.products.has(offering.ProductID) {
		return missingReference("offering")
	}
	stamp(&offering.CreatedAt, &offering.UpdatedAt)
	m.t.insert(offering.ID, *offering)
	return nil
}

func (m *memoryOfferings) List(_ context.Context) ([]*entities.CompanyProduct, error) {
	return pointers(m.t.filter(nil)), nil
}

// ---------------- Owner-scoped rows ----------------

type memoryNotes struct {
	t     *memTable[entities.Note]
	users *memTable[entities.User]
}

func (m *memoryNotes) Create(_ context.Context, note *entities.Note) error {
	if !m.users.has(note.UserID) {
		return missingReference("note")
	}
	stamp(&note.CreatedAt, &note.UpdatedAt)
	m.t.insert(note.ID, *note)
	return nil
}

func (m *memoryNotes) Update(_ context.Context, note *entities.Note) error {
	note.UpdatedAt = time.Now().UTC()
	if !m.t.replace(note.ID, *note) {
		return models.NotFound("note")
	}
	return nil
}

func (m *memoryNotes) FindByID(_ context.Context, id uuid.UUID) (*entities.Note, error) {
	note, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("note")
	}
	return &note, nil
}

func (m *memoryNotes) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	return pointers(m.t.filter(func(n entities.Note) bool { return n.UserID == userID })), nil
}

func (m *memoryNotes) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	return m.t.count(func(n entities.Note) bool { return n.UserID == userID }), nil
}

func (m *memoryNotes) DeleteForUser(_ context.Context, userID, id uuid.UUID) (int64, error) {
	return m.t.deleteWhere(id, func(n entities.Note) bool { return n.UserID == userID }), nil
}

type memoryBookmarks struct {
	t     *memTable[entities.Bookmark]
	users *memTable[entities.User]
}

func (m *memoryBookmarks) Create(_ context.Context, bookmark *entities.Bookmark) error {
	if !m.users.has(bookmark.UserID) {
		return missingReference("bookmark")
	}
	stamp(&bookmark.CreatedAt, &bookmark.UpdatedAt)
	m.t.insert(bookmark.ID, *bookmark)
	return nil
}

func (m *memoryBookmarks) Update(_ context.Context, bookmark *entities.Bookmark) error {
	bookmark.UpdatedAt = time.Now().UTC()
	if !m.t.replace(bookmark.ID, *bookmark) {
		return models.NotFound("bookmark")
	}
	return nil
}

func (m *memoryBookmarks) FindByID(_ context.Context, id uuid.UUID) (*entities.Bookmark, error) {
	bookmark, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("bookmark")
	}
	return &bookmark, nil
}

func (m *memoryBookmarks) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Bookmark, error) {
	return pointers(m.t.filter(func(b entities.Bookmark) bool { return b.UserID == userID })), nil
}

func (m *memoryBookmarks) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	return m.t.count(func(b entities.Bookmark) bool { return b.UserID == userID }), nil
}

func (m *memoryBookmarks) DeleteForUser(_ context.Context, userID, id uuid.UUID) (int64, error) {
	return m.t.deleteWhere(id, func(b entities.Bookmark) bool { return b.UserID == userID }), nil
}

type memoryVacations struct {
	t     *memTable[entities.Vacation]
	users *memTable[entities.User]
}

func (m *memoryVacations) Create(_ context.Context, vacation *entities.Vacation) error {
	if !m.users.has(vacation.UserID) {
		return missingReference("vacation")
	}
	stamp(&vacation.CreatedAt, &vacation.UpdatedAt)
	m.t.insert(vacation.ID, *vacation)
	return nil
}

func (m *memoryVacations) Update(_ context.Context, vacation *entities.Vacation) error {
	vacation.UpdatedAt = time.Now().UTC()
	if !m.t.replace(vacation.ID, *vacation) {
		return models.NotFound("vacation")
	}
	return nil
}

func (m *memoryVacations) FindByID(_ context.Context, id uuid.UUID) (*entities.Vacation, error) {
	vacation, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("vacation")
	}
	return &vacation, nil
}

func (m *memoryVacations) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Vacation, error) {
	return pointers(m.t.filter(func(v entities.Vacation) bool { return v.UserID == userID })), nil
}

func (m *memoryVacations) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	return m.t.count(func(v entities.Vacation) bool { return v.UserID == userID }), nil
}

func (m *memoryVacations) DeleteForUser(_ context.Context, userID, id uuid.UUID) (int64, error) {
	return m.t.deleteWhere(id, func(v entities.Vacation) bool { return v.UserID == userID }), nil
}

type memoryFollowings struct {
	t         *memTable[entities.FollowingCompany]
	users     *memTable[entities.User]
	companies *memTable[entities.Company]
}

func (m *memoryFollowings) Create(ctx context.Context, following *entities.FollowingCompany) error {
	if !m.users.has(following.UserID) || !m.companies.has(following.CompanyID) {
		return missingReference("following company")
	}
	if exists, _ := m.PairExists(ctx, following.UserID, following.CompanyID, following.ID); exists {
		return &models.GuardError{
			Kind:    models.ErrDuplicateRelationship,
			Entity:  "following company",
			Message: "following company already exists",
		}
	}
	stamp(&following.CreatedAt, &following.UpdatedAt)
	m.t.insert(following.ID, *following)
	return nil
}

func (m *memoryFollowings) Update(ctx context.Context, following *entities.FollowingCompany) error {
	if !m.companies.has(following.CompanyID) {
		return missingReference("following company")
	}
	if exists, _ := m.PairExists(ctx, following.UserID, following.CompanyID, following.ID); exists {
		return &models.GuardError{
			Kind:    models.ErrDuplicateRelationship,
			Entity:  "following company",
			Message: "following company already exists",
		}
	}
	following.UpdatedAt = time.Now().UTC()
	if !m.t.replace(following.ID, *following) {
		return models.NotFound("following company")
	}
	return nil
}

func (m *memoryFollowings) FindByID(_ context.Context, id uuid.UUID) (*entities.FollowingCompany, error) {
	following, ok := m.t.get(id)
	if !ok {
		return nil, models.NotFound("following company")
	}
	return &following, nil
}

func (m *memoryFollowings) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.FollowingCompany, error) {
	return pointers(m.t.filter(func(f entities.FollowingCompany) bool { return f.UserID == userID })), nil
}

func (m *memoryFollowings) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	return m.t.count(func(f entities.FollowingCompany) bool { return f.UserID == userID }), nil
}

func (m *memoryFollowings) PairExists(_ context.Context, userID, companyID, excludeID uuid.UUID) (bool, error) {
	return m.t.count(func(f entities.FollowingCompany) bool {
		return f.UserID == userID && f.CompanyID == companyID && f.ID != excludeID
	}) > 0, nil
}

func (m *memoryFollowings) DeleteForUser(_ context.Context, userID, id uuid.UUID) (int64, error) {
	return m.t.deleteWhere(id, func(f entities.FollowingCompany) bool { return f.UserID == userID }), nil
}
