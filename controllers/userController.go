package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/initializers"
	"github.com/sparekart/sparekart-api/models"
)

// Admin user management.

func GetUsers(ctx *gin.Context) {
	var users []models.User

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.User{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("email LIKE ? OR username LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	result := query.Limit(limit).Offset(offset).Find(&users)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", result.Error)
		return
	}

	// Never return password hashes, even to admins.
	for i := range users {
		users[i].Password = ""
	}

	var count int64
	initializers.DB.Model(&models.User{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateUserRole elevates or revokes the admin role.
func UpdateUserRole(ctx *gin.Context) {
	var body struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Role must be either user or admin")
		return
	}

	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userId).
		Update("role", body.Role)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User role updated successfully"})
}

func DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	if result := initializers.DB.Delete(&models.User{}, userId); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
