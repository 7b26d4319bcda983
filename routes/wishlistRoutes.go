package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func WishlistRoutes(server *gin.Engine) {
	authed := server.Group("/wishlist", middlewares.RequireAuth())
	{
		authed.POST("", controllers.AddToWishlist)
		authed.GET("/:userId", controllers.GetWishlist)
		authed.DELETE("/:itemId", controllers.RemoveFromWishlist)
	}
}
