package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tourism-backend/middleware"
	"tourism-backend/models"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{DB: db, JWTSecret: jwtSecret, TokenTTL: 7 * 24 * time.Hour}
}

type RegisterRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Address    string `json:"address" binding:"required"`
	ContactNo  string `json:"contactNo" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(ctrl.TokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ctrl.JWTSecret))
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := ctrl.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusBadRequest, "Email already in use")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(c, err)
		return
	}

	user := models.User{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      email,
		Address:    req.Address,
		ContactNo:  req.ContactNo,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please provide both email and password")
		return
	}

	var user models.User
	err := ctrl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil || !user.CheckPassword(req.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout acknowledges the request. Tokens are stateless; the client drops
// its copy.
func (ctrl *AuthController) Logout(c *gin.Context) {
	utils.JSONMessage(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns fresh account data for the authenticated user.
func (ctrl *AuthController) Me(c *gin.Context) {
	var user models.User
	if err := ctrl.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "User not found, access denied")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
