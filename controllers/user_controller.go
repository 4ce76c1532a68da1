package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"tourism-backend/middleware"
	"tourism-backend/models"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type UpdateProfileRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName" binding:"required"`
	Address    string `json:"address"`
	ContactNo  string `json:"contactNo"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// GetUsers is the administrator account listing.
func (ctrl *UserController) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := ctrl.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.NewListMeta(page, limit, total),
	})
}

func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := ctrl.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "User not found, access denied")
		return
	}

	user.FirstName = req.FirstName
	user.MiddleName = req.MiddleName
	user.LastName = req.LastName
	user.Address = req.Address
	user.ContactNo = req.ContactNo
	if err := ctrl.DB.Save(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

func (ctrl *UserController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := ctrl.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "User not found, access denied")
		return
	}

	if !user.CheckPassword(req.CurrentPassword) {
		utils.JSONError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := ctrl.DB.Model(&user).Update("password", user.Password).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Password changed successfully", nil)
}

// DeleteUser removes an account. Administrators cannot delete themselves.
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	if uint(id) == middleware.UserID(c) {
		utils.JSONError(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var user models.User
	dbErr := ctrl.DB.First(&user, id).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "User not found")
		return
	}
	if dbErr != nil {
		respondServiceError(c, dbErr)
		return
	}

	if err := ctrl.DB.Delete(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User deleted successfully", nil)
}
