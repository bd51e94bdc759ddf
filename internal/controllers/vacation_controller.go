package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type VacationController struct {
	vacationService service.VacationService
}

func NewVacationController(vacationService service.VacationService) *VacationController {
	return &VacationController{vacationService: vacationService}
}

// ListVacations handles GET /api/users/:userId/vacations
func (vc *VacationController) ListVacations(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	vacations, err := vc.vacationService.ListVacations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacations)
}

// CreateVacation handles POST /api/users/:userId/vacations
func (vc *VacationController) CreateVacation(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req models.VacationRequest
	if !bindJSON(c, &req) {
		return
	}

	vacation, err := vc.vacationService.CreateVacation(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vacation)
}

// UpdateVacation handles PUT /api/users/:userId/vacations/:id
func (vc *VacationController) UpdateVacation(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}
	var req models.VacationRequest
	if !bindJSON(c, &req) {
		return
	}

	vacation, err := vc.vacationService.UpdateVacation(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacation)
}

// DeleteVacation handles DELETE /api/users/:userId/vacations/:id
func (vc *VacationController) DeleteVacation(c *gin.Context) {
	userID, id, ok := ownedIDs(c)
	if !ok {
		return
	}

	if _, err := vc.vacationService.DeleteVacation(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
