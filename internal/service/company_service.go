package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"acme-be/internal/cache"
	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const companyListKey = "companies:all"

// Bounds for synthesized company profits
const (
	MinSynthesizedProfit = -2000.0
	MaxSynthesizedProfit = 5000.0
	MaxSynthesizedYears  = 3
)

// CompanyService defines the interface for company business logic
type CompanyService interface {
	ListCompanies(ctx context.Context) ([]*entities.Company, error)
	RandomCompany(ctx context.Context) (*entities.Company, error)
	CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*entities.Company, *ProfitSynthesis, error)
	ListCompanyProfits(ctx context.Context, companyID uuid.UUID) ([]*entities.CompanyProfit, error)
}

// ProfitSynthesis tracks the profit records written after a company is created
type ProfitSynthesis struct {
	done    chan struct{}
	profits []*entities.CompanyProfit
	err     error
}

// Wait blocks until synthesis finishes and returns the records that were
// written along with the first failure, if any
func (p *ProfitSynthesis) Wait() ([]*entities.CompanyProfit, error) {
	<-p.done
	return p.profits, p.err
}

type companyService struct {
	repo     repository.CompanyRepository
	profits  repository.CompanyProfitRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCompanyService creates a new company service. cacheClient may be nil.
func NewCompanyService(repo repository.CompanyRepository, profits repository.CompanyProfitRepository, cacheClient cache.Cache, cacheTTL time.Duration) CompanyService {
	return &companyService{
		repo:     repo,
		profits:  profits,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// ListCompanies returns all companies ordered by name
func (s *companyService) ListCompanies(ctx context.Context) ([]*entities.Company, error) {
	if s.cache != nil {
		var cached []*entities.Company
		if err := s.cache.GetJSON(ctx, companyListKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "company cache read failed", "err", err)
		}
	}

	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, companyListKey, companies, s.cacheTTL); err != nil {
			slog.WarnContext(ctx, "company cache write failed", "err", err)
		}
	}
	return companies, nil
}

func (s *companyService) RandomCompany(ctx context.Context) (*entities.Company, error) {
	return s.repo.Random(ctx)
}

func (s *companyService) ListCompanyProfits(ctx context.Context, companyID uuid.UUID) ([]*entities.CompanyProfit, error) {
	if _, err := s.repo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.profits.ListByCompany(ctx, companyID)
}

// CreateCompany writes the company and starts synthesizing its profit
// history. The company is kept even if synthesis fails.
func (s *companyService) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*entities.Company, *ProfitSynthesis, error) {
	company := &entities.Company{
		ID:          uuid.New(),
		Name:        req.Name,
		Phone:       req.Phone,
		State:       req.State,
		CatchPhrase: req.CatchPhrase,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, companyListKey); err != nil {
			slog.WarnContext(ctx, "company cache invalidation failed", "err", err)
		}
	}

	synthesis := &ProfitSynthesis{done: make(chan struct{})}
	go s.synthesizeProfits(context.WithoutCancel(ctx), company.ID, synthesis)
	return company, synthesis, nil
}

// synthesizeProfits writes one record per preceding fiscal year
func (s *companyService) synthesizeProfits(ctx context.Context, companyID uuid.UUID, synthesis *ProfitSynthesis) {
	defer close(synthesis.done)

	years := gofakeit.Number(1, MaxSynthesizedYears)
	current := s.now().UTC().Year()

	var (
		mu      sync.Mutex
		written []*entities.CompanyProfit
		g       errgroup.Group
	)
	for k := 1; k <= years; k++ {
		profit := &entities.CompanyProfit{
			ID:         uuid.New(),
			CompanyID:  companyID,
			FiscalYear: fiscalYearEnd(current - k),
			Amount:     gofakeit.Price(MinSynthesizedProfit, MaxSynthesizedProfit),
		}
		g.Go(func() error {
			if err := s.profits.Create(ctx, profit); err != nil {
				return err
			}
			mu.Lock()
			written = append(written, profit)
			mu.Unlock()
			return nil
		})
	}
	synthesis.err = g.Wait()
	synthesis.profits = written

	if synthesis.err != nil {
		slog.ErrorContext(ctx, "company profit synthesis failed", "company_id", companyID, "err", synthesis.err)
		return
	}
	slog.DebugContext(ctx, "company profits synthesized", "company_id", companyID, "count", len(written))
}

// fiscalYearEnd is the last instant of the given calendar year
func fiscalYearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 999999000, time.UTC)
}
