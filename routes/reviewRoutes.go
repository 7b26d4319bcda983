package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func ReviewRoutes(server *gin.Engine) {
	server.POST("/review", middlewares.RequireAuth(), controllers.CreateReview)
	server.DELETE("/review/:reviewId", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteReview)
}
