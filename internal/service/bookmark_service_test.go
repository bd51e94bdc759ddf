package service

import (
	"context"
	"testing"

	"acme-be/internal/models"

	"github.com/google/uuid"
)

func TestCreateBookmarkQuota(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewBookmarkService(store.Bookmarks)
	owner := seedUser(t, store)

	for i := range MaxBookmarksPerUser {
		if _, err := svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{URL: ptr("https://example.com")}); err != nil {
			t.Fatalf("bookmark %d: unexpected error: %v", i+1, err)
		}
	}
	_, err := svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{URL: ptr("https://example.com")})
	wantKind(t, err, models.ErrQuotaExceeded)
}

func TestCreateBookmarkURL(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewBookmarkService(store.Bookmarks)
	owner := seedUser(t, store)

	_, err := svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{URL: ptr("not a url")})
	wantKind(t, err, models.ErrValidationFailed)

	_, err = svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{Rating: ptr(2)})
	wantKind(t, err, models.ErrMissingRequiredField)

	_, err = svc.CreateBookmark(ctx, uuid.Nil, &models.BookmarkRequest{URL: ptr("https://example.com")})
	wantKind(t, err, models.ErrMissingRequiredField)

	bookmark, err := svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{URL: ptr("https://example.com")})
	mustNoErr(t, err)
	if bookmark.Rating != DefaultBookmarkRating || bookmark.Category != "" {
		t.Fatalf("expected defaults, got rating %d category %q", bookmark.Rating, bookmark.Category)
	}
}

func TestUpdateBookmark(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewBookmarkService(store.Bookmarks)
	owner := seedUser(t, store)

	bookmark, err := svc.CreateBookmark(ctx, owner, &models.BookmarkRequest{URL: ptr("https://example.com")})
	mustNoErr(t, err)

	updated, err := svc.UpdateBookmark(ctx, owner, bookmark.ID, &models.BookmarkRequest{Category: ptr("news"), Rating: ptr(1)})
	mustNoErr(t, err)
	if updated.Category != "news" || updated.Rating != 1 || updated.URL != "https://example.com" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	_, err = svc.UpdateBookmark(ctx, owner, bookmark.ID, &models.BookmarkRequest{URL: ptr("nope")})
	wantKind(t, err, models.ErrValidationFailed)

	_, err = svc.GetBookmark(ctx, uuid.New(), bookmark.ID)
	wantKind(t, err, models.ErrNotFound)
}
