package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sparekart/sparekart-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRouter() *gin.Engine {
	router := gin.New()
	router.POST("/auth/signup", Signup)
	return router
}

func TestSignupIgnoresRequestedRole(t *testing.T) {
	db := setupControllerTest(t)
	router := signupRouter()

	recorder := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "mallory",
		"email":    "mallory@example.com",
		"password": "password123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "mallory@example.com").First(&user).Error)
	assert.Equal(t, "user", user.Role, "signup must never grant a requested role")
	assert.False(t, user.AccountActivated)
	assert.NotEmpty(t, user.AccountActivationToken)
	assert.NotEqual(t, "password123", user.Password)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	db := setupControllerTest(t)
	require.NoError(t, db.Create(&models.User{
		Username: "priya",
		Email:    "priya@example.com",
		Role:     "user",
	}).Error)
	router := signupRouter()

	recorder := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "priya2",
		"email":    "priya@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
