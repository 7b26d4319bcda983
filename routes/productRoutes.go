package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.GET("/product/:id/reviews", controllers.GetProductReviews)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/product", controllers.CreateProduct)
		admin.PUT("/product/:id", controllers.UpdateProduct)
		admin.DELETE("/product/:id", controllers.DeleteProduct)
		admin.POST("/product-sizes", controllers.UpsertProductSizes)
		admin.POST("/product-images", controllers.UploadProductImages)
		admin.DELETE("/product-images/:imageId", controllers.DeleteProductImage)
	}
}
