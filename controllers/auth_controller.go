// controllers/auth_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"resource-booking-backend/middleware"
	"resource-booking-backend/services"
	"resource-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users    *services.UserService
	Sessions *services.SessionService
}

func NewAuthController(users *services.UserService, sessions *services.SessionService) *AuthController {
	return &AuthController{Users: users, Sessions: sessions}
}

type RegisterPayload struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ct *AuthController) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := ct.Users.Register(payload.Username, payload.Email, payload.Password); err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.JSONMessage(c, http.StatusConflict, "Email already in use")
			return
		}
		log.Printf("POST /api/users error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "User registered successfully")
}

func (ct *AuthController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing username or password")
		return
	}

	user, err := ct.Users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.JSONMessage(c, http.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, services.ErrNotVerified):
			utils.JSONMessage(c, http.StatusForbidden, "Account not verified")
		default:
			log.Printf("POST /api/login error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}

	token, err := ct.Sessions.Create(user.ID)
	if err != nil {
		log.Printf("POST /api/login session error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	c.SetCookie(middleware.SessionCookie, token, 7*24*3600, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"email":    user.Email,
		},
	})
}

func (ct *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := ct.Sessions.Destroy(token); err != nil {
			log.Printf("POST /api/logout error: %v", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	utils.JSONMessage(c, http.StatusOK, "Logged out successfully")
}

func (ct *AuthController) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"email":    user.Email,
	}})
}

func (ct *AuthController) Username(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

func (ct *AuthController) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid user")
		return
	}

	if err := ct.Users.DeleteAccount(user); err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.JSONMessage(c, http.StatusConflict, "Cannot delete account while active bookings exist for your resources")
			return
		}
		log.Printf("DELETE /api/users/me error: %v", err)
		utils.JSONInternalError(c)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	utils.JSONMessage(c, http.StatusOK, "User account and related resources deleted successfully")
}
