package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/checkout/quote", controllers.QuoteCheckout)

	authed := server.Group("/", middlewares.RequireAuth())
	{
		authed.POST("/order", controllers.CreateOrder)
		authed.GET("/order/:orderId", controllers.GetOrderById)
		authed.GET("/user/:userId/orders", controllers.GetOrdersByCustomerId)
	}

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/order", controllers.GetOrders)
		admin.GET("/order-undelivered", controllers.GetUndeliveredOrders)
		admin.PATCH("/order/:orderId", controllers.UpdateOrderStatus)
		admin.DELETE("/order/:orderId", controllers.DeleteOrder)
	}
}
