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

type SubPlaceController struct {
	DB *gorm.DB
}

func NewSubPlaceController(db *gorm.DB) *SubPlaceController {
	return &SubPlaceController{DB: db}
}

type SubPlaceRequest struct {
	PlaceID         uint     `json:"placeId" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	Image           string   `json:"image"`
	EntryFee        float64  `json:"entryFee" binding:"gte=0"`
	OpenTime        string   `json:"openTime"`
	CloseTime       string   `json:"closeTime"`
	BestTimeToVisit string   `json:"bestTimeToVisit"`
	Features        []string `json:"features"`
}

func (ctrl *SubPlaceController) GetSubPlaces(c *gin.Context) {
	query := ctrl.DB.Model(&models.SubPlace{})
	if placeID := c.Query("placeId"); placeID != "" {
		query = query.Where("place_id = ?", placeID)
	}

	var subPlaces []models.SubPlace
	if err := query.Preload("Place").Order("name").Find(&subPlaces).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subPlaces": subPlaces})
}

func (ctrl *SubPlaceController) GetSubPlaceByID(c *gin.Context) {
	var subPlace models.SubPlace
	err := ctrl.DB.Preload("Place").First(&subPlace, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Sub-place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subPlace": subPlace})
}

func (ctrl *SubPlaceController) CreateSubPlace(c *gin.Context) {
	var req SubPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var place models.Place
	if err := ctrl.DB.First(&place, req.PlaceID).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Parent place not found")
		return
	}

	subPlace := models.SubPlace{
		PlaceID:         req.PlaceID,
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		Image:           req.Image,
		EntryFee:        req.EntryFee,
		OpenTime:        req.OpenTime,
		CloseTime:       req.CloseTime,
		BestTimeToVisit: req.BestTimeToVisit,
		Features:        utils.JSONList(req.Features),
		CreatedByID:     middleware.UserID(c),
	}
	if err := ctrl.DB.Create(&subPlace).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Sub-place created successfully", gin.H{"subPlace": subPlace})
}

func (ctrl *SubPlaceController) UpdateSubPlace(c *gin.Context) {
	var subPlace models.SubPlace
	err := ctrl.DB.First(&subPlace, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Sub-place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req SubPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	subPlace.PlaceID = req.PlaceID
	subPlace.Name = req.Name
	subPlace.Description = req.Description
	subPlace.Location = req.Location
	subPlace.Image = req.Image
	subPlace.EntryFee = req.EntryFee
	subPlace.OpenTime = req.OpenTime
	subPlace.CloseTime = req.CloseTime
	subPlace.BestTimeToVisit = req.BestTimeToVisit
	subPlace.Features = utils.JSONList(req.Features)
	if err := ctrl.DB.Save(&subPlace).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Sub-place updated successfully", gin.H{"subPlace": subPlace})
}

func (ctrl *SubPlaceController) DeleteSubPlace(c *gin.Context) {
	var subPlace models.SubPlace
	err := ctrl.DB.First(&subPlace, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Sub-place not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctrl.DB.Delete(&subPlace).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Sub-place deleted successfully", nil)
}
