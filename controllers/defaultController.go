package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to SpareKart API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

PRODUCT
- GET "/product" - Get all products (search, category, pagination)
- GET "/product/:id" - Get product by ID
- GET "/product/:id/reviews" - Get reviews for a product
- POST "/product" - Create new product (admin)
- PUT "/product/:id" - Update product (admin)
- DELETE "/product/:id" - Delete product (admin)
- POST "/product-sizes" - Create or update per-size price and stock (admin)
- POST "/product-images" - Add product images (admin)
- DELETE "/product-images/:imageId" - Delete a product image (admin)

CART
- POST "/cart" - Add item to cart
- GET "/cart/:userId" - Get a user's cart
- DELETE "/cart-item/:itemId" - Remove a cart item
- DELETE "/cart/:userId/clear" - Empty a user's cart

CHECKOUT & PAYMENT
- POST "/checkout/quote" - Price a cart (subtotal, shipping, total)
- POST "/payment/order" - Create a gateway payment order
- POST "/payment/verify" - Verify a payment and create the order
- POST "/payment/webhook" - Gateway payment notifications

ORDER
- POST "/order" - Create a cash-on-delivery order
- GET "/order" - Retrieve all orders (admin)
- GET "/user/:userId/orders" - Get orders for a specific user
- GET "/order/:orderId" - Get order by ID
- PATCH "/order/:orderId" - Update order status (admin)
- DELETE "/order/:orderId" - Void order by ID (admin)

REVIEWS & WISHLIST
- POST "/review" - Post a product review
- DELETE "/review/:reviewId" - Delete a review (admin)
- POST "/wishlist" - Add product to wishlist
- GET "/wishlist/:userId" - Get a user's wishlist
- DELETE "/wishlist/:itemId" - Remove a wishlist item

USERS
- GET "/user" - List users (admin)
- PATCH "/user/:userId/role" - Update a user's role (admin)
- DELETE "/user/:userId" - Delete a user (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
