package service

import (
	"context"
	"testing"
	"time"

	"acme-be/internal/models"
)

func date(t time.Time) *models.Date {
	return &models.Date{Time: t}
}

func vacationRequest(start time.Time, days int) *models.VacationRequest {
	return &models.VacationRequest{StartDate: date(start), EndDate: date(start.AddDate(0, 0, days))}
}

func TestCreateVacationQuota(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewVacationService(store.Vacations)
	owner := seedUser(t, store)
	start := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

	for i := range MaxVacationsPerUser {
		if _, err := svc.CreateVacation(ctx, owner, vacationRequest(start.AddDate(0, i, 0), 5)); err != nil {
			t.Fatalf("vacation %d: unexpected error: %v", i+1, err)
		}
	}
	_, err := svc.CreateVacation(ctx, owner, vacationRequest(start, 1))
	wantKind(t, err, models.ErrQuotaExceeded)
}

func TestCreateVacationDates(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewVacationService(store.Vacations)
	start := time.Date(2024, time.August, 1, 9, 0, 0, 0, time.UTC)
	earlier := start.Add(-24 * time.Hour)

	tests := []struct {
		name string
		req  *models.VacationRequest
		kind error
	}{
		{"end before start", &models.VacationRequest{StartDate: date(start), EndDate: date(earlier)}, models.ErrInvalidRange},
		{"missing end", &models.VacationRequest{StartDate: date(start)}, models.ErrMissingRequiredField},
		{"missing start", &models.VacationRequest{EndDate: date(start)}, models.ErrMissingRequiredField},
		{"equal dates", &models.VacationRequest{StartDate: date(start), EndDate: date(start)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateVacation(ctx, seedUser(t, store), tt.req)
			if tt.kind == nil {
				mustNoErr(t, err)
				return
			}
			wantKind(t, err, tt.kind)
		})
	}
}

func TestUpdateVacationRange(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewVacationService(store.Vacations)
	owner := seedUser(t, store)
	start := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

	vacation, err := svc.CreateVacation(ctx, owner, vacationRequest(start, 7))
	mustNoErr(t, err)

	tooEarly := start.AddDate(0, 0, -1)
	_, err = svc.UpdateVacation(ctx, owner, vacation.ID, &models.VacationRequest{EndDate: date(tooEarly)})
	wantKind(t, err, models.ErrInvalidRange)

	later := start.AddDate(0, 0, 10)
	updated, err := svc.UpdateVacation(ctx, owner, vacation.ID, &models.VacationRequest{EndDate: date(later)})
	mustNoErr(t, err)
	if !updated.EndDate.Equal(later) {
		t.Fatalf("expected end %v, got %v", later, updated.EndDate)
	}
}
