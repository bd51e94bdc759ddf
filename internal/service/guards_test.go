package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"acme-be/internal/models"

	"github.com/google/uuid"
)

func TestQuotaGuard(t *testing.T) {
	owner := uuid.New()
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"below ceiling", 4, false},
		{"at ceiling", 5, true},
		{"above ceiling", 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := func(context.Context, uuid.UUID) (int, error) { return tt.count, nil }
			err := quotaGuard("notes", 5, owner, count)(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}
			if err == nil {
				return
			}
			wantKind(t, err, models.ErrQuotaExceeded)
			if got := err.Error(); got != "user can only have a max of 5 notes" {
				t.Fatalf("unexpected message %q", got)
			}
		})
	}
}

func TestOrderedRange(t *testing.T) {
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	if err := orderedRange("vacation", start, start)(context.Background()); err != nil {
		t.Fatalf("equal dates should pass, got %v", err)
	}
	if err := orderedRange("vacation", start, start.AddDate(0, 0, 3))(context.Background()); err != nil {
		t.Fatalf("ordered dates should pass, got %v", err)
	}
	wantKind(t, orderedRange("vacation", start, start.Add(-time.Second))(context.Background()), models.ErrInvalidRange)
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://example.com", true},
		{"http://localhost:3000/path?q=1", true},
		{"not a url", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		err := absoluteURL("bookmark", tt.url)(context.Background())
		if tt.valid && err != nil {
			t.Errorf("%q: unexpected error %v", tt.url, err)
		}
		if !tt.valid {
			wantKind(t, err, models.ErrValidationFailed)
		}
	}
}

func TestOwnerLocksSerializePerOwner(t *testing.T) {
	locks := newOwnerLocks()
	owner := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(owner)
			defer unlock()

			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected one holder at a time, saw %d", maxSeen)
	}
	if len(locks.locks) != 0 {
		t.Fatalf("expected released entries to be dropped, %d left", len(locks.locks))
	}
}

func TestOwnerLocksIndependentOwners(t *testing.T) {
	locks := newOwnerLocks()
	unlockA := locks.lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.lock(uuid.New())
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for a different owner blocked")
	}
}
