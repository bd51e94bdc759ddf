package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"acme-be/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps an error kind onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrQuotaExceeded),
		errors.Is(err, models.ErrMissingRequiredField),
		errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, models.ErrDuplicateRelationship),
		errors.Is(err, models.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body and logs server-side failures
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{
			"error":   models.ErrorCode(err),
			"message": "internal server error",
		})
		return
	}
	c.JSON(status, gin.H{
		"error":   models.ErrorCode(err),
		"message": err.Error(),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "BAD_REQUEST",
		"message": message,
	})
}

// bindJSON decodes the body and answers 400 on failure
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// uuidParam parses a path parameter and answers 400 when it is not a UUID
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// pageNumber reads an optional page number; missing means the first page
func pageNumber(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return max(page, 0), true
}
