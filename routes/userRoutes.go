package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/controllers"
	"github.com/sparekart/sparekart-api/middlewares"
)

func UserRoutes(server *gin.Engine) {
	admin := server.Group("/user", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetUsers)
		admin.PATCH("/:userId/role", controllers.UpdateUserRole)
		admin.DELETE("/:userId", controllers.DeleteUser)
	}
}
