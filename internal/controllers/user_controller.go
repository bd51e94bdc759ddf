package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers handles GET /api/users?page=N
func (uc *UserController) ListUsers(c *gin.Context) {
	page, ok := pageNumber(c.Query("page"))
	if !ok {
		badRequest(c, "page must be a number")
		return
	}

	result, err := uc.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchUsers handles GET /api/users/search/:term and /api/users/search/:term/:page
func (uc *UserController) SearchUsers(c *gin.Context) {
	page, ok := pageNumber(c.Param("page"))
	if !ok {
		badRequest(c, "page must be a number")
		return
	}

	result, err := uc.userService.SearchUsers(c.Request.Context(), c.Param("term"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserDetail handles GET /api/users/detail/:userId
func (uc *UserController) GetUserDetail(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	user, err := uc.userService.GetUserDetail(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RandomUser handles GET /api/users/random
func (uc *UserController) RandomUser(c *gin.Context) {
	user, err := uc.userService.RandomUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/users/:userId
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
