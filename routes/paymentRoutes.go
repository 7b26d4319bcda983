package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func PaymentRoutes(server *gin.Engine) {
	authed := server.Group("/payment", middlewares.RequireAuth())
	{
		authed.POST("/order", controllers.CreatePaymentOrder)
		authed.POST("/verify", controllers.VerifyPayment)
	}

	// The gateway calls this directly; it authenticates with its own
	// signature header, not a user token.
	server.POST("/payment/webhook", controllers.HandlePaymentWebhook)
}
