package initializers

import (
	"log"

	"github.com/sparekart/sparekart-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSize{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.PaymentIntent{},
		&models.Review{},
		&models.WishlistItem{},
	)
	log.Println("Database synced successfully.")
}
