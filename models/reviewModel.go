package models

import "gorm.io/gorm"

// Review is immutable once posted; there is no update route.
type Review struct {
	gorm.Model
	ProductID int    `json:"productId" binding:"required"`
	UserID    int    `json:"userId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Body      string `json:"body"`
}
