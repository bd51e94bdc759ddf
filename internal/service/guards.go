package service

import (
	"context"
	"sync"
	"time"

	"acme-be/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Per-user ceilings enforced when a row is created
const (
	MaxNotesPerUser             = 5
	MaxBookmarksPerUser         = 10
	MaxVacationsPerUser         = 3
	MaxFollowedCompaniesPerUser = 5
)

// guard is a check that can abort a write before it is persisted
type guard func(ctx context.Context) error

// runGuards evaluates guards in order and stops at the first failure
func runGuards(ctx context.Context, guards ...guard) error {
	for _, g := range guards {
		if err := g(ctx); err != nil {
			return err
		}
	}
	return nil
}

type ownerCounter func(ctx context.Context, userID uuid.UUID) (int, error)

// quotaGuard fails once the owner already holds limit rows
func quotaGuard(entity string, limit int, userID uuid.UUID, count ownerCounter) guard {
	return func(ctx context.Context) error {
		n, err := count(ctx, userID)
		if err != nil {
			return err
		}
		if n >= limit {
			return models.QuotaExceeded(entity, limit)
		}
		return nil
	}
}

func requireID(entity, field string, id uuid.UUID) guard {
	return func(context.Context) error {
		if id == uuid.Nil {
			return models.MissingField(entity, field)
		}
		return nil
	}
}

func requireString(entity, field, value string) guard {
	return func(context.Context) error {
		if value == "" {
			return models.MissingField(entity, field)
		}
		return nil
	}
}

func requireTime(entity, field string, value time.Time) guard {
	return func(context.Context) error {
		if value.IsZero() {
			return models.MissingField(entity, field)
		}
		return nil
	}
}

func notEmpty(entity, field, value string) guard {
	return func(context.Context) error {
		if value == "" {
			return models.Invalid(entity, field+" must not be empty")
		}
		return nil
	}
}

// orderedRange fails when end precedes start; equal instants are allowed
func orderedRange(entity string, start, end time.Time) guard {
	return func(context.Context) error {
		if end.Before(start) {
			return &models.GuardError{
				Kind:    models.ErrInvalidRange,
				Entity:  entity,
				Message: "end date is less than start date",
			}
		}
		return nil
	}
}

var validate = validator.New()

// absoluteURL applies the same url rule gin uses for request binding
func absoluteURL(entity, raw string) guard {
	return func(context.Context) error {
		if err := validate.Var(raw, "url"); err != nil {
			return models.Invalid(entity, raw+" is not a valid url")
		}
		return nil
	}
}

// ownerLocks serializes check-then-write sequences per owner within this
// process. It does not coordinate separate processes.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[uuid.UUID]*ownerLock)}
}

// lock blocks until owner is free and returns the matching unlock
func (l *ownerLocks) lock(owner uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[owner]
	if !ok {
		entry = &ownerLock{}
		l.locks[owner] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, owner)
		}
		l.mu.Unlock()
	}
}
