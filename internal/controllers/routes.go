package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups every controller served under /api
type Handlers struct {
	Users      *UserController
	Companies  *CompanyController
	Catalog    *CatalogController
	Notes      *NoteController
	Bookmarks  *BookmarkController
	Vacations  *VacationController
	Followings *FollowingCompanyController
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes mounts the API on api, which is normally the /api group
func RegisterRoutes(api gin.IRouter, h *Handlers) {
	users := api.Group("/users")
	{
		users.GET("", h.Users.ListUsers)
		users.POST("", h.Users.CreateUser)
		users.GET("/search/:term", h.Users.SearchUsers)
		users.GET("/search/:term/:page", h.Users.SearchUsers)
		users.GET("/detail/:userId", h.Users.GetUserDetail)
		users.GET("/random", h.Users.RandomUser)
		users.PUT("/:userId", h.Users.UpdateUser)

		users.GET("/:userId/notes", h.Notes.ListNotes)
		users.POST("/:userId/notes", h.Notes.CreateNote)
		users.PUT("/:userId/notes/:id", h.Notes.UpdateNote)
		users.DELETE("/:userId/notes/:id", h.Notes.DeleteNote)

		users.GET("/:userId/bookmarks", h.Bookmarks.ListBookmarks)
		users.POST("/:userId/bookmarks", h.Bookmarks.CreateBookmark)
		users.PUT("/:userId/bookmarks/:id", h.Bookmarks.UpdateBookmark)
		users.DELETE("/:userId/bookmarks/:id", h.Bookmarks.DeleteBookmark)
		users.GET("/:userId/bookmarks/:id/qrcode", h.Bookmarks.BookmarkQRCode)

		users.GET("/:userId/vacations", h.Vacations.ListVacations)
		users.POST("/:userId/vacations", h.Vacations.CreateVacation)
		users.PUT("/:userId/vacations/:id", h.Vacations.UpdateVacation)
		users.DELETE("/:userId/vacations/:id", h.Vacations.DeleteVacation)

		users.GET("/:userId/followingCompanies", h.Followings.ListFollowingCompanies)
		users.POST("/:userId/followingCompanies", h.Followings.FollowCompany)
		users.PUT("/:userId/followingCompanies/:id", h.Followings.UpdateFollowingCompany)
		users.DELETE("/:userId/followingCompanies/:id", h.Followings.UnfollowCompany)
	}

	companies := api.Group("/companies")
	{
		companies.GET("", h.Companies.ListCompanies)
		companies.POST("", h.Companies.CreateCompany)
		companies.GET("/random", h.Companies.RandomCompany)
		companies.GET("/:companyId/users", h.Companies.ListCompanyUsers)
		companies.GET("/:companyId/companyProfits", h.Companies.ListCompanyProfits)
	}

	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/offerings", h.Catalog.ListOfferings)
}
