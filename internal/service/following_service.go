package service

import (
	"context"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

const DefaultFollowingRating = 3

// FollowingCompanyService manages which companies a user follows
type FollowingCompanyService interface {
	ListFollowingCompanies(ctx context.Context, userID uuid.UUID) ([]*entities.FollowingCompany, error)
	FollowCompany(ctx context.Context, userID uuid.UUID, req *models.FollowingCompanyRequest) (*entities.FollowingCompany, error)
	UpdateFollowingCompany(ctx context.Context, userID, id uuid.UUID, req *models.FollowingCompanyRequest) (*entities.FollowingCompany, error)
	UnfollowCompany(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type followingCompanyService struct {
	repo  repository.FollowingCompanyRepository
	locks *ownerLocks
}

// NewFollowingCompanyService creates a new following company service
func NewFollowingCompanyService(repo repository.FollowingCompanyRepository) FollowingCompanyService {
	return &followingCompanyService{repo: repo, locks: newOwnerLocks()}
}

func (s *followingCompanyService) ListFollowingCompanies(ctx context.Context, userID uuid.UUID) ([]*entities.FollowingCompany, error) {
	return s.repo.ListByUser(ctx, userID)
}

// uniquePair fails when another row already links the same user and company
func (s *followingCompanyService) uniquePair(following *entities.FollowingCompany) guard {
	return func(ctx context.Context) error {
		exists, err := s.repo.PairExists(ctx, following.UserID, following.CompanyID, following.ID)
		if err != nil {
			return err
		}
		if exists {
			return &models.GuardError{
				Kind:    models.ErrDuplicateRelationship,
				Entity:  "following company",
				Message: "user is already following this company",
			}
		}
		return nil
	}
}

func (s *followingCompanyService) saveGuards(following *entities.FollowingCompany) []guard {
	return []guard{
		requireID("following company", "userId", following.UserID),
		requireID("following company", "companyId", following.CompanyID),
		s.uniquePair(following),
	}
}

func applyFollowing(following *entities.FollowingCompany, req *models.FollowingCompanyRequest) error {
	if req.CompanyID != nil {
		companyID, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			return models.Invalid("following company", "companyId must be a UUID")
		}
		following.CompanyID = companyID
	}
	if req.Rating != nil {
		following.Rating = *req.Rating
	}
	return nil
}

func (s *followingCompanyService) FollowCompany(ctx context.Context, userID uuid.UUID, req *models.FollowingCompanyRequest) (*entities.FollowingCompany, error) {
	following := &entities.FollowingCompany{ID: uuid.New(), UserID: userID, Rating: DefaultFollowingRating}
	if err := applyFollowing(following, req); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	guards := append([]guard{
		quotaGuard("followed companies", MaxFollowedCompaniesPerUser, userID, s.repo.CountByUser),
	}, s.saveGuards(following)...)
	if err := runGuards(ctx, guards...); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, following); err != nil {
		return nil, err
	}
	return following, nil
}

// UpdateFollowingCompany re-runs the duplicate check excluding the row itself
func (s *followingCompanyService) UpdateFollowingCompany(ctx context.Context, userID, id uuid.UUID, req *models.FollowingCompanyRequest) (*entities.FollowingCompany, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	following, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if following.UserID != userID {
		return nil, models.NotFound("following company")
	}
	if err := applyFollowing(following, req); err != nil {
		return nil, err
	}

	if err := runGuards(ctx, s.saveGuards(following)...); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, following); err != nil {
		return nil, err
	}
	return following, nil
}

func (s *followingCompanyService) UnfollowCompany(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	return s.repo.DeleteForUser(ctx, userID, id)
}
