package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowingCompanyController struct {
	followingService service.FollowingCompanyService
}

func NewFollowingCompanyController(followingService service.FollowingCompanyService) *FollowingCompanyController {
	return &FollowingCompanyController{followingService: followingService}
}

// ListFollowingCompanies handles GET /api/users/:userId/followingCompanies
func (fc *FollowingCompanyController) ListFollowingCompanies(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	followings, err := fc.followingService.ListFollowingCompanies(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, followings)
}

// FollowCompany handles POST /api/users/:userId/followingCompanies
func (fc *FollowingCompanyController) FollowCompany(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req models.FollowingCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	following, err := fc.followingService.FollowCompany(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, following)
}

// UpdateFollowingCompany handles PUT /api/users/:userId/followingCompanies/:id
func (fc *FollowingCompanyController) UpdateFollowingCompany(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}
	var req models.FollowingCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	following, err := fc.followingService.UpdateFollowingCompany(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}

// UnfollowCompany handles DELETE /api/users/:userId/followingCompanies/:id
func (fc *FollowingCompanyController) UnfollowCompany(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}

	if _, err := fc.followingService.UnfollowCompany(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
