package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// BookmarkQRCode handles GET /api/users/:userId/bookmarks/:id/qrcode.
// It renders the bookmark url as a PNG QR code.
func (bc *BookmarkController) BookmarkQRCode(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}

	bookmark, err := bc.bookmarkService.GetBookmark(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	// Medium error recovery
	pngData, err := qrcode.Encode(bookmark.URL, qrcode.Medium, qrCodeSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=bookmark.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
