package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItemBody(size string) gin.H {
	return gin.H{
		"userId":       3,
		"productId":    9,
		"productName":  "Shockproof Cover",
		"productPrice": 250.0,
		"quantity":     2,
		"size":         size,
	}
}

func TestCreateCartItemMergesDuplicateProductAndSize(t *testing.T) {
	db := setupControllerTest(t)
	router := gin.New()
	router.POST("/cart", CreateCartItem)

	// First add creates the cart aggregate and the line.
	recorder := performRequest(router, "POST", "/cart", cartItemBody("M"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", 3).First(&cart).Error)

	// Same product and size merges into the existing line.
	recorder = performRequest(router, "POST", "/cart", cartItemBody("M"))
	require.Equal(t, http.StatusOK, recorder.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// A different size is its own line.
	recorder = performRequest(router, "POST", "/cart", cartItemBody("L"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestCreateCartItemRejectsInvalidSize(t *testing.T) {
	setupControllerTest(t)
	router := gin.New()
	router.POST("/cart", CreateCartItem)

	recorder := performRequest(router, "POST", "/cart", cartItemBody("XXXL"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
