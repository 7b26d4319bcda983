package models

import "gorm.io/gorm"

type WishlistItem struct {
	gorm.Model
	UserID          int     `json:"userId"`
	ProductId       int     `json:"productId" binding:"required"`
	ProductName     string  `json:"productName"`
	ProductPrice    float64 `json:"productPrice"`
	ProductImageUrl string  `json:"productImageUrl"`
}
