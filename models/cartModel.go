package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID             int     `json:"cartId"`
	ProductId          int     `json:"productId"`
	ProductName        string  `json:"productName"`
	ProductPrice       float64 `json:"productPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Quantity           int     `json:"quantity"`
	Size               string  `json:"size"`
	ProductImageUrl    string  `json:"productImageUrl"`
}

type Cart struct {
	gorm.Model
	UserID int        `json:"userId"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
