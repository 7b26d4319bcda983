package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentIntent records a gateway order at creation time, binding the
// server-computed quote and the checkout payload to the gateway order id.
// Settlement reads the checkout back from this row, never from the client.
type PaymentIntent struct {
	gorm.Model
	UserID           int            `json:"userId"`
	GatewayOrderId   string         `json:"gatewayOrderId" gorm:"index"`
	GatewayPaymentId string         `json:"gatewayPaymentId"`
	Amount           float64        `json:"amount"`
	Status           string         `json:"status"`
	Payload          datatypes.JSON `json:"-"`
}
