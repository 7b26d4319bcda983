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

const msgFailedToCreateCart = "Failed to create cart"

// findOrCreateCart returns the user's cart aggregate, creating it on first
// use.
func findOrCreateCart(userId int) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", userId).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userId}
		if result := initializers.DB.Create(&cart); result.Error != nil {
			return cart, result.Error
		}
		return cart, nil
	}
	return cart, err
}

// CreateCartItem adds a line to the user's cart. The same product in the same
// size merges into one line with a summed quantity.
func CreateCartItem(ctx *gin.Context) {
	var body struct {
		UserID             int     `json:"userId" binding:"required"`
		ProductId          int     `json:"productId" binding:"required"`
		ProductName        string  `json:"productName" binding:"required"`
		ProductPrice       float64 `json:"productPrice" binding:"required"`
		DiscountPercentage float64 `json:"discountPercentage"`
		Quantity           int     `json:"quantity" binding:"required"`
		Size               string  `json:"size" binding:"required"`
		ProductImageUrl    string  `json:"productImageUrl"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	if !models.IsValidSize(body.Size) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid size "+body.Size)
		return
	}

	cart, err := findOrCreateCart(body.UserID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	var existingCartItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, body.ProductId, body.Size).
		First(&existingCartItem).Error

	if err == nil {
		existingCartItem.Quantity += body.Quantity

		if err := initializers.DB.Save(&existingCartItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Unable to update cart item quantity.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingCartItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error: ", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	cartItem := models.CartItem{
		CartID:             int(cart.ID),
		ProductId:          body.ProductId,
		ProductName:        body.ProductName,
		ProductPrice:       body.ProductPrice,
		DiscountPercentage: body.DiscountPercentage,
		Quantity:           body.Quantity,
		Size:               body.Size,
		ProductImageUrl:    body.ProductImageUrl,
	}
	if err := initializers.DB.Create(&cartItem).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": cartItem.ProductName + " added to cart",
		"id":      cartItem.ID,
	})
}

func GetCart(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var cart models.Cart
	result := initializers.DB.
		Where("user_id = ?", userId).
		Preload("Items").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}

func DeleteCartItem(ctx *gin.Context) {
	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse item id")
		return
	}

	if result := initializers.DB.Delete(&models.CartItem{}, itemId); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to remove cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart empties the user's cart. Checkout calls the same path internally
// after a successful order.
func ClearCart(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var cart models.Cart
	if err := initializers.DB.Where("user_id = ?", userId).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	if err := initializers.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
