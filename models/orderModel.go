package models

import "gorm.io/gorm"

// Order status values walked through by the admin back office.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment status values. Transitions happen server-side only, after the
// gateway signature has been verified.
const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
	PaymentStatusCOD     = "cod-pending"
)

type Order struct {
	gorm.Model
	UserID           int         `json:"userId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Street           string      `json:"street"`
	City             string      `json:"city"`
	State            string      `json:"state"`
	PostalCode       string      `json:"postalCode"`
	Country          string      `json:"country"`
	ItemsPrice       float64     `json:"itemsPrice"`
	ShippingPrice    float64     `json:"shippingPrice"`
	Tax              float64     `json:"tax"`
	Total            float64     `json:"total"`
	Status           string      `json:"status"`
	PaymentStatus    string      `json:"paymentStatus"`
	GatewayOrderId   string      `json:"gatewayOrderId" gorm:"index"`
	GatewayPaymentId string      `json:"gatewayPaymentId"`
	OrderItems       []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ProductId int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
}
