package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"acme-be/internal/cache"
	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BioWriter produces a user's biography from the rest of the record
type BioWriter func(user *entities.User) string

// UserService defines the interface for user business logic
type UserService interface {
	ListUsers(ctx context.Context, page int) (*models.UserPage, error)
	SearchUsers(ctx context.Context, term string, page int) (*models.UserPage, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetUserDetail(ctx context.Context, id uuid.UUID) (*entities.User, error)
	RandomUser(ctx context.Context) (*entities.User, error)
	ListCompanyUsers(ctx context.Context, companyID uuid.UUID) ([]*entities.User, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) (*entities.User, error)
}

type userService struct {
	repo      repository.UserRepository
	companies repository.CompanyRepository
	cache     cache.Cache
	cacheTTL  time.Duration
	pageSize  int
	bio       BioWriter
}

// UserOption configures a user service
type UserOption func(*userService)

// WithUserCache enables the read cache for user detail lookups
func WithUserCache(c cache.Cache, ttl time.Duration) UserOption {
	return func(s *userService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithPageSize(size int) UserOption {
	return func(s *userService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithBioWriter replaces the random biography generator
func WithBioWriter(bio BioWriter) UserOption {
	return func(s *userService) {
		s.bio = bio
	}
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, companies repository.CompanyRepository, opts ...UserOption) UserService {
	svc := &userService{
		repo:      repo,
		companies: companies,
		cacheTTL:  5 * time.Minute,
		pageSize:  50,
		bio:       randomBio,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// randomBio mixes the user's own fields with filler phrases
func randomBio(u *entities.User) string {
	return fmt.Sprintf("%s is a %s %s sort of person. %s %s sort of person. %s Feel free to contact %s at %s. %s",
		u.FirstName,
		strings.ToLower(gofakeit.BuzzWord()),
		strings.ToLower(gofakeit.Adjective()),
		gofakeit.HipsterSentence(8),
		gofakeit.Adjective(),
		gofakeit.Sentence(10),
		u.FullName(),
		u.Email,
		gofakeit.HipsterSentence(12),
	)
}

func userDetailKey(id uuid.UUID) string {
	return "user:detail:" + id.String()
}

func (s *userService) ListUsers(ctx context.Context, page int) (*models.UserPage, error) {
	return s.SearchUsers(ctx, "", page)
}

// SearchUsers counts and fetches one page of matching users concurrently
func (s *userService) SearchUsers(ctx context.Context, term string, page int) (*models.UserPage, error) {
	if page < 0 {
		page = 0
	}

	result := &models.UserPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.repo.Count(gctx, term)
		result.Count = count
		return err
	})
	g.Go(func() error {
		users, err := s.repo.Search(gctx, term, s.pageSize, page*s.pageSize)
		result.Users = users
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if result.Users == nil {
		result.Users = []*entities.User{}
	}
	return result, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.repo.FindByID(ctx, id, false)
}

// GetUserDetail returns the user with its biography, served from cache when possible
func (s *userService) GetUserDetail(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	key := userDetailKey(id)
	if s.cache != nil {
		var cached entities.User
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "user cache read failed", "user_id", id, "err", err)
		}
	}

	user, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, user, s.cacheTTL); err != nil {
			slog.WarnContext(ctx, "user cache write failed", "user_id", id, "err", err)
		} else {
			s.dropIfChanged(ctx, key, user)
		}
	}
	return user, nil
}

// dropIfChanged evicts a freshly cached detail when the row was updated
// between the read and the cache write. An update that commits after this
// check performs its own eviction.
func (s *userService) dropIfChanged(ctx context.Context, key string, cached *entities.User) {
	current, err := s.repo.FindByID(ctx, cached.ID, false)
	if err == nil && current.UpdatedAt.Equal(cached.UpdatedAt) {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "user cache invalidation failed", "user_id", cached.ID, "err", err)
	}
}

func (s *userService) RandomUser(ctx context.Context) (*entities.User, error) {
	return s.repo.Random(ctx)
}

func (s *userService) ListCompanyUsers(ctx context.Context, companyID uuid.UUID) ([]*entities.User, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, companyID)
}

// companyRef resolves an optional company reference from a request
func (s *userService) companyRef(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	companyID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, models.Invalid("user", "companyId must be a UUID")
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.Invalid("user", "company does not exist")
		}
		return nil, err
	}
	return &companyID, nil
}

// CreateUser stores a new user with a freshly generated biography
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	companyID, err := s.companyRef(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      req.Email,
		Title:      req.Title,
		Avatar:     req.Avatar,
		CompanyID:  companyID,
	}
	user.Bio = s.bio(user)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Bio = ""
	return user, nil
}

// UpdateUser applies the present fields and rewrites the biography,
// even when nothing it is built from changed
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Title != nil {
		user.Title = *req.Title
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.CompanyID != nil {
		companyID, err := s.companyRef(ctx, req.CompanyID)
		if err != nil {
			return nil, err
		}
		user.CompanyID = companyID
	}
	user.Bio = s.bio(user)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, userDetailKey(id)); err != nil {
			slog.WarnContext(ctx, "user cache invalidation failed", "user_id", id, "err", err)
		}
	}

	user.Bio = ""
	return user, nil
}
