package service

import (
	"context"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

// NoteService defines the interface for note business logic
type NoteService interface {
	ListNotes(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error)
	CreateNote(ctx context.Context, userID uuid.UUID, req *models.NoteRequest) (*entities.Note, error)
	UpdateNote(ctx context.Context, userID, id uuid.UUID, req *models.NoteRequest) (*entities.Note, error)
	DeleteNote(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type noteService struct {
	repo  repository.NoteRepository
	locks *ownerLocks
}

// NewNoteService creates a new note service
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo, locks: newOwnerLocks()}
}

func (s *noteService) ListNotes(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *noteService) saveGuards(note *entities.Note) []guard {
	return []guard{
		requireID("note", "userId", note.UserID),
		notEmpty("note", "text", note.Text),
	}
}

func applyNote(note *entities.Note, req *models.NoteRequest) {
	if req.Text != nil {
		note.Text = *req.Text
	}
	if req.Archived != nil {
		note.Archived = *req.Archived
	}
}

// CreateNote stores a new note after the quota and content checks pass
func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, req *models.NoteRequest) (*entities.Note, error) {
	note := &entities.Note{ID: uuid.New(), UserID: userID}
	applyNote(note, req)

	unlock := s.locks.lock(userID)
	defer unlock()

	guards := append([]guard{
		quotaGuard("notes", MaxNotesPerUser, userID, s.repo.CountByUser),
	}, s.saveGuards(note)...)
	if err := runGuards(ctx, guards...); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdateNote(ctx context.Context, userID, id uuid.UUID, req *models.NoteRequest) (*entities.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, models.NotFound("note")
	}
	applyNote(note, req)

	if err := runGuards(ctx, s.saveGuards(note)...); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes the note only when userID owns it
func (s *noteService) DeleteNote(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	return s.repo.DeleteForUser(ctx, userID, id)
}
