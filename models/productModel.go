package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SizeNames is the fixed set of sizes a product variant can be sold in.
var SizeNames = []string{"XS", "S", "M", "L", "XL", "XXL"}

func IsValidSize(size string) bool {
	for _, name := range SizeNames {
		if size == name {
			return true
		}
	}
	return false
}

// ProductSize holds per-size price and stock. Stock is only ever reduced
// through the conditional decrement in the checkout package.
type ProductSize struct {
	gorm.Model
	ProductID int     `json:"productId" gorm:"uniqueIndex:idx_product_size" binding:"required"`
	Size      string  `json:"size" gorm:"size:4;uniqueIndex:idx_product_size" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Stock     int     `json:"stock"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ObjectKey string `json:"objectKey"`
	ProductID int    `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Name               string         `json:"name" binding:"required"`
	Brand              string         `json:"brand"`
	Description        string         `json:"description" binding:"required"`
	Category           string         `json:"category" binding:"required"`
	Material           string         `json:"material"`
	Price              float64        `json:"price" binding:"required"`
	DiscountPercentage float64        `json:"discountPercentage"`
	Compatibility      datatypes.JSON `json:"compatibility"`
	Sizes              []ProductSize  `json:"sizes" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images             []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
