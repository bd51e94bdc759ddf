package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/service"

	"golang.org/x/sync/errgroup"
)

// Default seed sizes
const (
	MinUsers     = 200
	MaxUsers     = 230
	MinCompanies = 8
	MaxCompanies = 11
)

const seedConcurrency = 8

// Services are the write paths a seed goes through
type Services struct {
	Users      service.UserService
	Companies  service.CompanyService
	Catalog    service.CatalogService
	Notes      service.NoteService
	Followings service.FollowingCompanyService
}

// Summary counts what a seed created
type Summary struct {
	Companies  int
	Profits    int
	Products   int
	Offerings  int
	Users      int
	Followings int
	Notes      int
}

type Seeder struct {
	gen *Generator
	svc Services
}

func NewSeeder(gen *Generator, svc Services) *Seeder {
	return &Seeder{gen: gen, svc: svc}
}

// SeedIfEmpty seeds default sizes when there are no users yet
func (s *Seeder) SeedIfEmpty(ctx context.Context) (*Summary, error) {
	page, err := s.svc.Users.ListUsers(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if page.Count > 0 {
		slog.InfoContext(ctx, "store already populated, skipping fixtures", "users", page.Count)
		return nil, nil
	}
	return s.Seed(ctx, s.gen.Between(MinUsers, MaxUsers), s.gen.Between(MinCompanies, MaxCompanies))
}

// Seed creates companies with their offerings, then users with their
// follows and notes. Random draws happen up front; writes fan out.
func (s *Seeder) Seed(ctx context.Context, userCount, companyCount int) (*Summary, error) {
	summary := &Summary{}

	companies, err := s.seedCompanies(ctx, companyCount, summary)
	if err != nil {
		return summary, err
	}
	if err := s.seedCatalog(ctx, companies, summary); err != nil {
		return summary, err
	}
	if err := s.seedUsers(ctx, userCount, companies, summary); err != nil {
		return summary, err
	}

	slog.InfoContext(ctx, "fixtures seeded",
		"companies", summary.Companies,
		"profits", summary.Profits,
		"products", summary.Products,
		"offerings", summary.Offerings,
		"users", summary.Users,
		"followings", summary.Followings,
		"notes", summary.Notes,
	)
	return summary, nil
}

func (s *Seeder) seedCompanies(ctx context.Context, n int, summary *Summary) ([]*entities.Company, error) {
	requests := make([]*models.CreateCompanyRequest, n)
	for i := range requests {
		requests[i] = s.gen.Company()
	}

	companies := make([]*entities.Company, n)
	syntheses := make([]*service.ProfitSynthesis, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for i, req := range requests {
		g.Go(func() error {
			company, synthesis, err := s.svc.Companies.CreateCompany(gctx, req)
			if err != nil {
				return err
			}
			companies[i] = company
			syntheses[i] = synthesis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to seed companies: %w", err)
	}
	summary.Companies = len(companies)

	for _, synthesis := range syntheses {
		profits, err := synthesis.Wait()
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize profits: %w", err)
		}
		summary.Profits += len(profits)
	}
	return companies, nil
}

func (s *Seeder) seedCatalog(ctx context.Context, companies []*entities.Company, summary *Summary) error {
	products := make([]*entities.Product, 0, len(ProductNames))
	for _, name := range ProductNames {
		product, err := s.svc.Catalog.CreateProduct(ctx, name, s.gen.ProductDescription(), s.gen.SuggestedPrice())
		if err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		products = append(products, product)
	}
	summary.Products = len(products)

	for _, company := range companies {
		for _, i := range s.gen.Pick(len(products), s.gen.Between(1, 3)) {
			product := products[i]
			price := s.gen.Discounted(product.SuggestedPrice)
			if _, err := s.svc.Catalog.CreateOffering(ctx, company.ID, product.ID, price); err != nil {
				return fmt.Errorf("failed to seed offerings: %w", err)
			}
			summary.Offerings++
		}
	}
	return nil
}

// userPlan is everything drawn for one user before any write happens
type userPlan struct {
	req     *models.CreateUserRequest
	follows []*models.FollowingCompanyRequest
	notes   []*models.NoteRequest
}

func (s *Seeder) planUsers(n int, companies []*entities.Company) []userPlan {
	plans := make([]userPlan, n)
	for i := range plans {
		req := s.gen.User()
		if len(companies) > 0 {
			companyID := companies[s.gen.Between(0, len(companies)-1)].ID.String()
			req.CompanyID = &companyID
		}

		var follows []*models.FollowingCompanyRequest
		for _, j := range s.gen.Pick(len(companies), s.gen.Between(1, 4)) {
			companyID := companies[j].ID.String()
			rating := s.gen.Rating()
			follows = append(follows, &models.FollowingCompanyRequest{CompanyID: &companyID, Rating: &rating})
		}

		notes := make([]*models.NoteRequest, s.gen.Between(1, 4))
		for j := range notes {
			notes[j] = s.gen.Note(req.Email)
		}

		plans[i] = userPlan{req: req, follows: follows, notes: notes}
	}
	return plans
}

func (s *Seeder) seedUsers(ctx context.Context, n int, companies []*entities.Company, summary *Summary) error {
	plans := s.planUsers(n, companies)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, plan := range plans {
		g.Go(func() error {
			user, err := s.svc.Users.CreateUser(gctx, plan.req)
			if err != nil {
				return fmt.Errorf("failed to seed user: %w", err)
			}
			for _, follow := range plan.follows {
				if _, err := s.svc.Followings.FollowCompany(gctx, user.ID, follow); err != nil {
					return fmt.Errorf("failed to seed following company: %w", err)
				}
			}
			for _, note := range plan.notes {
				if _, err := s.svc.Notes.CreateNote(gctx, user.ID, note); err != nil {
					return fmt.Errorf("failed to seed note: %w", err)
				}
			}

			mu.Lock()
			summary.Users++
			summary.Followings += len(plan.follows)
			summary.Notes += len(plan.notes)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
