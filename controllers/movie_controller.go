package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelrivas243/streamia-server/models"
	"github.com/emanuelrivas243/streamia-server/services"
)

type MovieController struct {
	catalogService *services.CatalogService
}

func NewMovieController(catalogService *services.CatalogService) *MovieController {
	return &MovieController{catalogService: catalogService}
}

func (ctl *MovieController) List(c *gin.Context) {
	result, err := ctl.catalogService.ListMovies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   result.Movies,
		"source": result.Source,
		"total":  len(result.Movies),
	})
}

func (ctl *MovieController) Explore(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	result, err := ctl.catalogService.ExploreMovies(c.Request.Context(), category, search)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"data":    result.Movies,
		"source":  result.Source,
		"total":   len(result.Movies),
		"filters": gin.H{"category": category, "search": search},
	}
	if result.Message != "" {
		response["message"] = result.Message
	}

	c.JSON(http.StatusOK, response)
}

func (ctl *MovieController) GetByID(c *gin.Context) {
	movie, err := ctl.catalogService.GetMovieByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// ExternalPopular always answers from the provider, never the store.
func (ctl *MovieController) ExternalPopular(c *gin.Context) {
	movies, err := ctl.catalogService.PopularFromProvider(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   movies,
		"source": services.SourceExternal,
		"total":  len(movies),
	})
}

func (ctl *MovieController) Update(c *gin.Context) {
	var req models.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	movie, err := ctl.catalogService.UpdateMovie(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (ctl *MovieController) Delete(c *gin.Context) {
	if err := ctl.catalogService.DeleteMovie(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
