package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	authed := server.Group("/", middlewares.RequireAuth())
	{
		authed.POST("/cart", controllers.CreateCartItem)
		authed.GET("/cart/:userId", controllers.GetCart)
		authed.DELETE("/cart/:userId/clear", controllers.ClearCart)
		authed.DELETE("/cart-item/:itemId", controllers.DeleteCartItem)
	}
}
