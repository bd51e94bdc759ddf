package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	bookmarkService service.BookmarkService
}

func NewBookmarkController(bookmarkService service.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService}
}

// ListBookmarks handles GET /api/users/:userId/bookmarks
func (bc *BookmarkController) ListBookmarks(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	bookmarks, err := bc.bookmarkService.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// CreateBookmark handles POST /api/users/:userId/bookmarks
func (bc *BookmarkController) CreateBookmark(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req models.BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	bookmark, err := bc.bookmarkService.CreateBookmark(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// UpdateBookmark handles PUT /api/users/:userId/bookmarks/:id
func (bc *BookmarkController) UpdateBookmark(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}
	var req models.BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	bookmark, err := bc.bookmarkService.UpdateBookmark(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark handles DELETE /api/users/:userId/bookmarks/:id
func (bc *BookmarkController) DeleteBookmark(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}

	if _, err := bc.bookmarkService.DeleteBookmark(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
