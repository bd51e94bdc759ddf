package controllers

import (
	"net/http"

	"acme-be/internal/models"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type CompanyController struct {
	companyService service.CompanyService
	userService    service.UserService
}

func NewCompanyController(companyService service.CompanyService, userService service.UserService) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		userService:    userService,
	}
}

// ListCompanies handles GET /api/companies
func (cc *CompanyController) ListCompanies(c *gin.Context) {
	companies, err := cc.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// CreateCompany handles POST /api/companies.
// Profit synthesis keeps running after the response is sent.
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	var req models.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, _, err := cc.companyService.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// RandomCompany handles GET /api/companies/random
func (cc *CompanyController) RandomCompany(c *gin.Context) {
	company, err := cc.companyService.RandomCompany(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompanyUsers handles GET /api/companies/:companyId/users
func (cc *CompanyController) ListCompanyUsers(c *gin.Context) {
	companyID, ok := uuidParam(c, "companyId")
	if !ok {
		return
	}

	users, err := cc.userService.ListCompanyUsers(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListCompanyProfits handles GET /api/companies/:companyId/companyProfits
func (cc *CompanyController) ListCompanyProfits(c *gin.Context) {
	companyID, ok := uuidParam(c, "companyId")
	if !ok {
		return
	}

	profits, err := cc.companyService.ListCompanyProfits(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profits)
}
