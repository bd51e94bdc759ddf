package service

import (
	"context"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"

	"github.com/google/uuid"
)

// DefaultBookmarkRating applies when a bookmark is created without a rating
const DefaultBookmarkRating = 5

// BookmarkService defines the interface for bookmark business logic
type BookmarkService interface {
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error)
	GetBookmark(ctx context.Context, userID, id uuid.UUID) (*entities.Bookmark, error)
	CreateBookmark(ctx context.Context, userID uuid.UUID, req *models.BookmarkRequest) (*entities.Bookmark, error)
	UpdateBookmark(ctx context.Context, userID, id uuid.UUID, req *models.BookmarkRequest) (*entities.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type bookmarkService struct {
	repo  repository.BookmarkRepository
	locks *ownerLocks
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(repo repository.BookmarkRepository) BookmarkService {
	return &bookmarkService{repo: repo, locks: newOwnerLocks()}
}

func (s *bookmarkService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetBookmark returns a bookmark owned by userID
func (s *bookmarkService) GetBookmark(ctx context.Context, userID, id uuid.UUID) (*entities.Bookmark, error) {
	bookmark, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, models.NotFound("bookmark")
	}
	return bookmark, nil
}

func (s *bookmarkService) saveGuards(bookmark *entities.Bookmark) []guard {
	return []guard{
		requireID("bookmark", "userId", bookmark.UserID),
		requireString("bookmark", "url", bookmark.URL),
		absoluteURL("bookmark", bookmark.URL),
	}
}

func applyBookmark(bookmark *entities.Bookmark, req *models.BookmarkRequest) {
	if req.URL != nil {
		bookmark.URL = *req.URL
	}
	if req.Rating != nil {
		bookmark.Rating = *req.Rating
	}
	if req.Category != nil {
		bookmark.Category = *req.Category
	}
}

func (s *bookmarkService) CreateBookmark(ctx context.Context, userID uuid.UUID, req *models.BookmarkRequest) (*entities.Bookmark, error) {
	bookmark := &entities.Bookmark{
		ID:     uuid.New(),
		UserID: userID,
		Rating: DefaultBookmarkRating,
	}
	applyBookmark(bookmark, req)

	unlock := s.locks.lock(userID)
	defer unlock()

	guards := append([]guard{
		quotaGuard("bookmarks", MaxBookmarksPerUser, userID, s.repo.CountByUser),
	}, s.saveGuards(bookmark)...)
	if err := runGuards(ctx, guards...); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *bookmarkService) UpdateBookmark(ctx context.Context, userID, id uuid.UUID, req *models.BookmarkRequest) (*entities.Bookmark, error) {
	bookmark, err := s.GetBookmark(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyBookmark(bookmark, req)

	if err := runGuards(ctx, s.saveGuards(bookmark)...); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *bookmarkService) DeleteBookmark(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	return s.repo.DeleteForUser(ctx, userID, id)
}
