package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelrivas243/streamia-server/models"
	"github.com/emanuelrivas243/streamia-server/services"
)

type RatingController struct {
	ratingService *services.RatingService
}

func NewRatingController(ratingService *services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// Submit upserts the caller's rating for a movie.
func (ctl *RatingController) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rating, err := ctl.ratingService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (ctl *RatingController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ratings, err := ctl.ratingService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ratings, "total": len(ratings)})
}

func (ctl *RatingController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rating, err := ctl.ratingService.Update(c.Request.Context(), userID, c.Param("movieId"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (ctl *RatingController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctl.ratingService.Delete(c.Request.Context(), userID, c.Param("movieId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
