package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"acme-be/internal/models"

	"github.com/google/uuid"
)

func TestCreateNoteQuota(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNoteService(store.Notes)
	owner := seedUser(t, store)

	for i := range MaxNotesPerUser {
		if _, err := svc.CreateNote(ctx, owner, &models.NoteRequest{Text: ptr("note")}); err != nil {
			t.Fatalf("note %d: unexpected error: %v", i+1, err)
		}
	}

	_, err := svc.CreateNote(ctx, owner, &models.NoteRequest{Text: ptr("one too many")})
	wantKind(t, err, models.ErrQuotaExceeded)

	var guardErr *models.GuardError
	if !errors.As(err, &guardErr) || guardErr.Limit != MaxNotesPerUser || guardErr.Entity != "notes" {
		t.Fatalf("expected quota error naming notes and %d, got %#v", MaxNotesPerUser, err)
	}

	// Another owner is unaffected
	if _, err := svc.CreateNote(ctx, seedUser(t, store), &models.NoteRequest{Text: ptr("fresh")}); err != nil {
		t.Fatalf("unexpected error for second owner: %v", err)
	}
}

func TestCreateNoteValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(newStore(t).Notes)

	tests := []struct {
		name  string
		owner uuid.UUID
		req   *models.NoteRequest
		kind  error
	}{
		{"missing owner", uuid.Nil, &models.NoteRequest{Text: ptr("hi")}, models.ErrMissingRequiredField},
		{"empty text", uuid.New(), &models.NoteRequest{Text: ptr("")}, models.ErrValidationFailed},
		{"no text", uuid.New(), &models.NoteRequest{}, models.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNote(ctx, tt.owner, tt.req)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestCreateNoteDefaults(t *testing.T) {
	store := newStore(t)
	svc := NewNoteService(store.Notes)

	note, err := svc.CreateNote(context.Background(), seedUser(t, store), &models.NoteRequest{Text: ptr("hello")})
	mustNoErr(t, err)
	if note.Archived {
		t.Fatal("expected archived to default to false")
	}
	if note.CreatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNoteService(store.Notes)
	owner := seedUser(t, store)

	note, err := svc.CreateNote(ctx, owner, &models.NoteRequest{Text: ptr("draft")})
	mustNoErr(t, err)

	updated, err := svc.UpdateNote(ctx, owner, note.ID, &models.NoteRequest{Archived: ptr(true)})
	mustNoErr(t, err)
	if !updated.Archived || updated.Text != "draft" {
		t.Fatalf("expected only archived to change, got %+v", updated)
	}

	_, err = svc.UpdateNote(ctx, owner, note.ID, &models.NoteRequest{Text: ptr("")})
	wantKind(t, err, models.ErrValidationFailed)

	_, err = svc.UpdateNote(ctx, uuid.New(), note.ID, &models.NoteRequest{Text: ptr("hijack")})
	wantKind(t, err, models.ErrNotFound)

	_, err = svc.UpdateNote(ctx, owner, uuid.New(), &models.NoteRequest{Text: ptr("ghost")})
	wantKind(t, err, models.ErrNotFound)

	notes, err := svc.ListNotes(ctx, owner)
	mustNoErr(t, err)
	if len(notes) != 1 || notes[0].Text != "draft" || !notes[0].Archived {
		t.Fatalf("rejected updates must not persist, got %+v", notes)
	}
}

func TestDeleteNoteRequiresOwner(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNoteService(store.Notes)
	owner := seedUser(t, store)

	note, err := svc.CreateNote(ctx, owner, &models.NoteRequest{Text: ptr("keep me")})
	mustNoErr(t, err)

	removed, err := svc.DeleteNote(ctx, uuid.New(), note.ID)
	mustNoErr(t, err)
	if removed != 0 {
		t.Fatalf("expected 0 rows removed for another owner, got %d", removed)
	}
	notes, _ := svc.ListNotes(ctx, owner)
	if len(notes) != 1 {
		t.Fatalf("expected note to survive, got %d notes", len(notes))
	}

	removed, err = svc.DeleteNote(ctx, owner, note.ID)
	mustNoErr(t, err)
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}
}

func TestConcurrentNoteCreationRespectsQuota(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNoteService(store.Notes)
	owner := seedUser(t, store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateNote(ctx, owner, &models.NoteRequest{Text: ptr("race")})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, models.ErrQuotaExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != MaxNotesPerUser || rejected != 20-MaxNotesPerUser {
		t.Fatalf("expected %d created, got %d created and %d rejected", MaxNotesPerUser, succeeded, rejected)
	}
	count, err := store.Notes.CountByUser(ctx, owner)
	mustNoErr(t, err)
	if count != MaxNotesPerUser {
		t.Fatalf("expected %d stored notes, got %d", MaxNotesPerUser, count)
	}
}

func TestCreateNoteForUnknownUser(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNoteService(store.Notes)
	ghost := uuid.New()

	_, err := svc.CreateNote(ctx, ghost, &models.NoteRequest{Text: ptr("orphan")})
	wantKind(t, err, models.ErrValidationFailed)

	count, err := store.Notes.CountByUser(ctx, ghost)
	mustNoErr(t, err)
	if count != 0 {
		t.Fatalf("expected no stored notes, got %d", count)
	}
}
