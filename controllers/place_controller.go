package controllers

import (
	"errors"
	"net/http"

	"tourism-backend/middleware"
	"tourism-backend/models"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceController struct {
	DB *gorm.DB
}

func NewPlaceController(db *gorm.DB) *PlaceController {
	return &PlaceController{DB: db}
}

type PlaceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"gte=0"`
}

func (ctrl *PlaceController) GetPlaces(c *gin.Context) {
	query := ctrl.DB.Model(&models.Place{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR location LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var places []models.Place
	if err := query.Order("name").Find(&places).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

func (ctrl *PlaceController) GetPlaceByID(c *gin.Context) {
	var place models.Place
	err := ctrl.DB.First(&place, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var subPlaces []models.SubPlace
	if err := ctrl.DB.Where("place_id = ?", place.ID).Find(&subPlaces).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": place, "subPlaces": subPlaces})
}

func (ctrl *PlaceController) CreatePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	place := models.Place{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Image:       req.Image,
		Price:       req.Price,
		CreatedByID: middleware.UserID(c),
	}
	if err := ctrl.DB.Create(&place).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Place created successfully", gin.H{"place": place})
}

func (ctrl *PlaceController) UpdatePlace(c *gin.Context) {
	var place models.Place
	err := ctrl.DB.First(&place, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	place.Name = req.Name
	place.Description = req.Description
	place.Location = req.Location
	place.Image = req.Image
	place.Price = req.Price
	if err := ctrl.DB.Save(&place).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Place updated successfully", gin.H{"place": place})
}

// DeletePlace removes the place along with its sub-places.
func (ctrl *PlaceController) DeletePlace(c *gin.Context) {
	var place models.Place
	err := ctrl.DB.First(&place, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", place.ID).Delete(&models.SubPlace{}).Error; err != nil {
			return err
		}
		return tx.Delete(&place).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Place deleted successfully", nil)
}
