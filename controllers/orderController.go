package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/checkout"
	"github.com/sparekart/sparekart-api/initializers"
	"github.com/sparekart/sparekart-api/models"
	"github.com/sparekart/sparekart-api/utils"
	"gorm.io/gorm"
)

// checkoutItem is one cart line as submitted at checkout.
type checkoutItem struct {
	ProductId          int     `json:"productId" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	Price              float64 `json:"price" binding:"required"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Quantity           int     `json:"quantity" binding:"required"`
	Size               string  `json:"size" binding:"required"`
}

type shippingInfo struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
}

type checkoutRequest struct {
	UserID   int            `json:"userId" binding:"required"`
	Shipping shippingInfo   `json:"shipping" binding:"required"`
	Items    []checkoutItem `json:"items" binding:"required"`
}

func (req *checkoutRequest) pricedItems() []checkout.PricedItem {
	items := make([]checkout.PricedItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, checkout.PricedItem{
			Price:              item.Price,
			DiscountPercentage: item.DiscountPercentage,
			Quantity:           item.Quantity,
			Size:               item.Size,
		})
	}
	return items
}

// buildOrder prices the cart server-side and assembles the order record.
// Client-submitted totals are never trusted.
func buildOrder(req *checkoutRequest, paymentStatus string) *models.Order {
	quote := checkout.Price(req.pricedItems(), req.Shipping.State)

	order := &models.Order{
		UserID:        req.UserID,
		FirstName:     req.Shipping.FirstName,
		LastName:      req.Shipping.LastName,
		Email:         req.Shipping.Email,
		Phone:         req.Shipping.Phone,
		Street:        req.Shipping.Street,
		City:          req.Shipping.City,
		State:         req.Shipping.State,
		PostalCode:    req.Shipping.PostalCode,
		Country:       req.Shipping.Country,
		ItemsPrice:    quote.ItemsPrice,
		ShippingPrice: quote.ShippingPrice,
		Tax:           quote.Tax,
		Total:         quote.Total,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: paymentStatus,
	}
	for _, item := range req.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductId: item.ProductId,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return order
}

// writeOrder runs the order writer and maps its failures onto HTTP responses.
// Returns true when the order was persisted.
func writeOrder(ctx *gin.Context, order *models.Order) bool {
	writer := checkout.Writer{DB: initializers.DB}
	if err := writer.Create(order); err != nil {
		respondOrderWriteError(ctx, err)
		return false
	}
	return true
}

func respondOrderWriteError(ctx *gin.Context, err error) {
	var validationErr *checkout.ValidationError
	var sizeErr *checkout.SizeUnavailableError
	var stockErr *checkout.InsufficientStockError
	switch {
	case errors.As(err, &validationErr):
		sendErrorResponse(ctx, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &sizeErr):
		sendErrorResponse(ctx, http.StatusConflict, sizeErr.Error())
	case errors.As(err, &stockErr):
		sendErrorResponse(ctx, http.StatusConflict, stockErr.Error())
	default:
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order, please try again.")
	}
}

// clearUserCart empties the user's server-held cart after a completed
// checkout.
func clearUserCart(userId int) {
	var cart models.Cart
	if err := initializers.DB.Where("user_id = ?", userId).First(&cart).Error; err != nil {
		return
	}
	if err := initializers.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Error clearing cart:", err)
	}
}

// Send an order confirmation email
func sendOrderConfirmationEmail(order *models.Order) error {
	emailData := utils.EmailData{
		Name:    order.FirstName,
		Message: fmt.Sprintf("Your order #%d has been placed. Total: ₹%.2f. We will notify you when it ships.", order.ID, order.Total),
		LogoURL: "https://www.sparekart.in/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(order.Email, fmt.Sprintf("SpareKart Order #%d Confirmed", order.ID), emailData, templatePath)
}

// QuoteCheckout prices a cart without writing anything. The storefront calls
// this to render the order summary before payment.
func QuoteCheckout(ctx *gin.Context) {
	var req checkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote := checkout.Price(req.pricedItems(), req.Shipping.State)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"quote": quote})
}

// CreateOrder handles cash-on-delivery checkout. Card payments go through the
// payment controller, which creates the order only after the gateway
// signature has been verified.
func CreateOrder(ctx *gin.Context) {
	var req checkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order := buildOrder(&req, models.PaymentStatusCOD)
	if !writeOrder(ctx, order) {
		return
	}

	clearUserCart(order.UserID)

	if err := sendOrderConfirmationEmail(order); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"order":   order,
	})
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("id LIKE ?", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrdersByCustomerId(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems").Where("user_id = ?", userId)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	if result := query.Order("created_at " + sortOrder).Find(&orders); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": order,
	})
}

func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status"`
	}
	err := ctx.ShouldBindJSON(&orderStatusData)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}
	if result := initializers.DB.Model(&models.Order{}).Where("id = ?", orderId).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
	})
}

func DeleteOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	if result := initializers.DB.Delete(&models.Order{}, orderId); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to delete order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := initializers.DB.
		Model(&models.Order{}).
		Where("status != ?", models.OrderStatusDelivered).
		Count(&count)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count undelivered orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
