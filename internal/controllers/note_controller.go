package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteController struct {
	noteService service.NoteService
}

func NewNoteController(noteService service.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// ownedIDs parses the owner and row ids of /api/users/:userId/<kind>/:id
func ownedIDs(c *gin.Context) (userID, id uuid.UUID, ok bool) {
	if userID, ok = uuidParam(c, "userId"); !ok {
		return
	}
	id, ok = uuidParam(c, "id")
	return
}

// ListNotes handles GET /api/users/:userId/notes
func (nc *NoteController) ListNotes(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	notes, err := nc.noteService.ListNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /api/users/:userId/notes
func (nc *NoteController) CreateNote(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req models.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := nc.noteService.CreateNote(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /api/users/:userId/notes/:id
func (nc *NoteController) UpdateNote(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}
	var req models.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := nc.noteService.UpdateNote(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /api/users/:userId/notes/:id.
// Deleting someone else's note is a silent no-op.
func (nc *NoteController) DeleteNote(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}

	if _, err := nc.noteService.DeleteNote(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
