package controllers

import (
	"net/http"

	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProducts handles GET /api/products
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, err := cc.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListOfferings handles GET /api/offerings
func (cc *CatalogController) ListOfferings(c *gin.Context) {
	offerings, err := cc.catalogService.ListOfferings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offerings)
}
