package service

import (
	"context"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

// VacationService defines the interface for vacation business logic
type VacationService interface {
	ListVacations(ctx context.Context, userID uuid.UUID) ([]*entities.Vacation, error)
	CreateVacation(ctx context.Context, userID uuid.UUID, req *models.VacationRequest) (*entities.Vacation, error)
	UpdateVacation(ctx context.Context, userID, id uuid.UUID, req *models.VacationRequest) (*entities.Vacation, error)
	DeleteVacation(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type vacationService struct {
	repo  repository.VacationRepository
	locks *ownerLocks
}

// NewVacationService creates a new vacation service
func NewVacationService(repo repository.VacationRepository) VacationService {
	return &vacationService{repo: repo, locks: newOwnerLocks()}
}

func (s *vacationService) ListVacations(ctx context.Context, userID uuid.UUID) ([]*entities.Vacation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *vacationService) saveGuards(vacation *entities.Vacation) []guard {
	return []guard{
		requireID("vacation", "userId", vacation.UserID),
		requireTime("vacation", "startDate", vacation.StartDate),
		requireTime("vacation", "endDate", vacation.EndDate),
		orderedRange("vacation", vacation.StartDate, vacation.EndDate),
	}
}

func applyVacation(vacation *entities.Vacation, req *models.VacationRequest) {
	if req.StartDate != nil {
		vacation.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		vacation.EndDate = req.EndDate.UTC()
	}
}

func (s *vacationService) CreateVacation(ctx context.Context, userID uuid.UUID, req *models.VacationRequest) (*entities.Vacation, error) {
	vacation := &entities.Vacation{ID: uuid.New(), UserID: userID}
	applyVacation(vacation, req)

	unlock := s.locks.lock(userID)
	defer unlock()

	guards := append([]guard{
		quotaGuard("vacations", MaxVacationsPerUser, userID, s.repo.CountByUser),
	}, s.saveGuards(vacation)...)
	if err := runGuards(ctx, guards...); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, vacation); err != nil {
		return nil, err
	}
	return vacation, nil
}

func (s *vacationService) UpdateVacation(ctx context.Context, userID, id uuid.UUID, req *models.VacationRequest) (*entities.Vacation, error) {
	vacation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vacation.UserID != userID {
		return nil, models.NotFound("vacation")
	}
	applyVacation(vacation, req)

	if err := runGuards(ctx, s.saveGuards(vacation)...); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, vacation); err != nil {
		return nil, err
	}
	return vacation, nil
}

func (s *vacationService) DeleteVacation(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	return s.repo.DeleteForUser(ctx, userID, id)
}
