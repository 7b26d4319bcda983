package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/initializers"
	"github.com/sparekart/sparekart-api/models"
	"gorm.io/gorm"
)

// CreateReview posts a review. Reviews are immutable; there is no update
// handler.
func CreateReview(ctx *gin.Context) {
	var review models.Review
	if err := ctx.ShouldBindJSON(&review); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input: rating must be between 1 and 5")
		return
	}

	// Validate product exists
	var product models.Product
	if err := initializers.DB.First(&product, review.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate product")
		}
		return
	}

	if err := initializers.DB.Create(&review).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to post review")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Review posted successfully",
		"review":  review,
	})
}

func GetProductReviews(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []models.Review
	if result := initializers.DB.
		Where("product_id = ?", productId).
		Order("created_at desc").
		Find(&reviews); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"reviews": reviews})
}

// DeleteReview is admin-only moderation; owners cannot edit or remove posted
// reviews.
func DeleteReview(ctx *gin.Context) {
	reviewId, err := strconv.Atoi(ctx.Param("reviewId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if result := initializers.DB.Delete(&models.Review{}, reviewId); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
