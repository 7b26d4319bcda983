package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderByIdNotFound(t *testing.T) {
	setupControllerTest(t)
	router := gin.New()
	router.GET("/order/:orderId", GetOrderById)

	recorder := performRequest(router, "GET", "/order/999", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetOrderByIdReturnsOrder(t *testing.T) {
	db := setupControllerTest(t)
	order := models.Order{
		UserID:        7,
		Total:         550,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.PaymentStatusPaid,
		OrderItems: []models.OrderItem{
			{ProductId: 1, Name: "Shockproof Cover", Price: 90, Quantity: 5, Size: "M"},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	router := gin.New()
	router.GET("/order/:orderId", GetOrderById)

	recorder := performRequest(router, "GET", "/order/1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, order.ID, response.Order.ID)
	assert.Len(t, response.Order.OrderItems, 1)
}
