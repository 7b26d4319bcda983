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

// AddToWishlist saves a product for later. Adding the same product twice is a
// no-op.
func AddToWishlist(ctx *gin.Context) {
	var body struct {
		UserID          int     `json:"userId" binding:"required"`
		ProductId       int     `json:"productId" binding:"required"`
		ProductName     string  `json:"productName"`
		ProductPrice    float64 `json:"productPrice"`
		ProductImageUrl string  `json:"productImageUrl"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var existing models.WishlistItem
	err := initializers.DB.
		Where("user_id = ? AND product_id = ?", body.UserID, body.ProductId).
		First(&existing).Error

	if err == nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Already in wishlist",
			"id":      existing.ID,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to check wishlist")
		return
	}

	item := models.WishlistItem{
		UserID:          body.UserID,
		ProductId:       body.ProductId,
		ProductName:     body.ProductName,
		ProductPrice:    body.ProductPrice,
		ProductImageUrl: body.ProductImageUrl,
	}
	if err := initializers.DB.Create(&item).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": item.ProductName + " added to wishlist",
		"id":      item.ID,
	})
}

func GetWishlist(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var items []models.WishlistItem
	if result := initializers.DB.
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&items); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"wishlist": items})
}

func RemoveFromWishlist(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse item id")
		return
	}

	if result := initializers.DB.Delete(&models.WishlistItem{}, itemId); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove wishlist item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Wishlist item removed"})
}
