package service

import (
	"context"
	"errors"
	"testing"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T {
	return &v
}

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewMemoryStore()
}

// seedUser stores a user directly and returns its id
func seedUser(t *testing.T, store *repository.Store) uuid.UUID {
	t.Helper()
	user := &entities.User{ID: uuid.New(), FirstName: "Milton", LastName: "Waddams", Email: uuid.NewString() + "@initech.test"}
	mustNoErr(t, store.Users.Create(context.Background(), user))
	return user.ID
}

// seedCompany stores a company directly and returns its id
func seedCompany(t *testing.T, store *repository.Store) uuid.UUID {
	t.Helper()
	company := &entities.Company{ID: uuid.New(), Name: "Initech"}
	mustNoErr(t, store.Companies.Create(context.Background(), company))
	return company.ID
}

// wantKind fails unless err unwraps to kind
func wantKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunGuardsStopsAtFirstFailure(t *testing.T) {
	var calls []string
	record := func(name string, err error) guard {
		return func(context.Context) error {
			calls = append(calls, name)
			return err
		}
	}

	err := runGuards(context.Background(),
		record("quota", nil),
		record("reference", models.MissingField("note", "userId")),
		record("rule", nil),
	)
	wantKind(t, err, models.ErrMissingRequiredField)
	if len(calls) != 2 || calls[0] != "quota" || calls[1] != "reference" {
		t.Fatalf("unexpected guard calls: %v", calls)
	}
}
