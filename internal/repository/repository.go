package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"acme-be/internal/entities"
	"acme-be/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserRepository defines the interface for user database operations.
// Lookups use the default projection (no bio) unless withBio is set.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID, withBio bool) (*entities.User, error)
	Count(ctx context.Context, term string) (int, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*entities.User, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entities.User, error)
	Random(ctx context.Context) (*entities.User, error)
}

// CompanyRepository defines the interface for company database operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entities.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	List(ctx context.Context) ([]*entities.Company, error)
	Random(ctx context.Context) (*entities.Company, error)
}

type CompanyProfitRepository interface {
	Create(ctx context.Context, profit *entities.CompanyProfit) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entities.CompanyProfit, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	List(ctx context.Context) ([]*entities.Product, error)
}

// OfferingRepository stores company product offerings
type OfferingRepository interface {
	Create(ctx context.Context, offering *entities.CompanyProduct) error
	List(ctx context.Context) ([]*entities.CompanyProduct, error)
}

// NoteRepository defines the interface for note database operations.
// DeleteForUser only removes the row when it belongs to userID.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	Update(ctx context.Context, note *entities.Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entities.Bookmark) error
	Update(ctx context.Context, bookmark *entities.Bookmark) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Bookmark, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type VacationRepository interface {
	Create(ctx context.Context, vacation *entities.Vacation) error
	Update(ctx context.Context, vacation *entities.Vacation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Vacation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Vacation, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// FollowingCompanyRepository defines the interface for follow relationships.
// PairExists ignores the row identified by excludeID so an update does not
// collide with itself.
type FollowingCompanyRepository interface {
	Create(ctx context.Context, following *entities.FollowingCompany) error
	Update(ctx context.Context, following *entities.FollowingCompany) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.FollowingCompany, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.FollowingCompany, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	PairExists(ctx context.Context, userID, companyID, excludeID uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// Store bundles every repository behind one storage handle
type Store struct {
	Users      UserRepository
	Companies  CompanyRepository
	Profits    CompanyProfitRepository
	Products   ProductRepository
	Offerings  OfferingRepository
	Notes      NoteRepository
	Bookmarks  BookmarkRepository
	Vacations  VacationRepository
	Followings FollowingCompanyRepository
}

// NewPostgresStore creates repositories backed by a PostgreSQL connection
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Companies:  NewCompanyRepository(db),
		Profits:    NewCompanyProfitRepository(db),
		Products:   NewProductRepository(db),
		Offerings:  NewOfferingRepository(db),
		Notes:      NewNoteRepository(db),
		Bookmarks:  NewBookmarkRepository(db),
		Vacations:  NewVacationRepository(db),
		Followings: NewFollowingCompanyRepository(db),
	}
}

// likePattern builds a substring pattern with LIKE wildcards escaped
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// translateError maps driver constraint violations onto error kinds
func translateError(entity, action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &models.GuardError{
				Kind:    models.ErrDuplicateRelationship,
				Entity:  entity,
				Message: fmt.Sprintf("%s already exists", entity),
			}
		case "23503": // foreign_key_violation
			return missingReference(entity)
		case "23502", "23514": // not_null_violation, check_violation
			return models.Invalid(entity, fmt.Sprintf("%s is invalid: %s", entity, pqErr.Message))
		}
	}
	return fmt.Errorf("failed to %s %s: %w", action, entity, err)
}

func missingReference(entity string) error {
	return models.Invalid(entity, fmt.Sprintf("%s references a record that does not exist", entity))
}

// rowsAffected reports how many rows a statement touched
func rowsAffected(result sql.Result, entity string) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", entity, err)
	}
	return n, nil
}
