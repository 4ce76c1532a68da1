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

type HotelController struct {
	DB *gorm.DB
}

func NewHotelController(db *gorm.DB) *HotelController {
	return &HotelController{DB: db}
}

type HotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PlaceID       uint     `json:"placeId"`
	Location      string   `json:"location" binding:"required"`
	Address       string   `json:"address"`
	ContactNo     string   `json:"contactNo"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Website       string   `json:"website"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gte=0"`
	Category      string   `json:"category" binding:"required,oneof=Budget Mid-Range Luxury Resort Boutique"`
	Amenities     []string `json:"amenities"`
	RoomTypes     []string `json:"roomTypes"`
	Images        []string `json:"images"`
	RoomInventory int      `json:"roomInventory" binding:"omitempty,min=1"`
}

// GetHotels lists active hotels with optional location, category, price
// range and text search filters.
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := ctrl.DB.Model(&models.Hotel{}).Where("is_active = ?", true)
	if location := c.Query("location"); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPrice, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		query = query.Where("price_per_night >= ?", minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		query = query.Where("price_per_night <= ?", maxPrice)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var hotels []models.Hotel
	if err := query.Preload("Place").
		Order("average_rating DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&hotels).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hotels":     hotels,
		"pagination": utils.NewListMeta(page, limit, total),
	})
}

func (ctrl *HotelController) GetHotelByID(c *gin.Context) {
	var hotel models.Hotel
	err := ctrl.DB.Preload("Place").First(&hotel, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Hotel not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	hotel := models.Hotel{
		Name:          req.Name,
		Description:   req.Description,
		PlaceID:       req.PlaceID,
		Location:      req.Location,
		Address:       req.Address,
		ContactNo:     req.ContactNo,
		Email:         req.Email,
		Website:       req.Website,
		PricePerNight: req.PricePerNight,
		Category:      req.Category,
		Amenities:     utils.JSONList(req.Amenities),
		RoomTypes:     utils.JSONList(req.RoomTypes),
		Images:        utils.JSONList(req.Images),
		RoomInventory: req.RoomInventory,
		IsActive:      true,
		CreatedByID:   middleware.UserID(c),
	}
	if hotel.RoomInventory == 0 {
		hotel.RoomInventory = models.DefaultRoomInventory
	}

	if err := ctrl.DB.Create(&hotel).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Hotel created successfully", gin.H{"hotel": hotel})
}

func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	var hotel models.Hotel
	err := ctrl.DB.First(&hotel, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Hotel not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	hotel.Name = req.Name
	hotel.Description = req.Description
	hotel.PlaceID = req.PlaceID
	hotel.Location = req.Location
	hotel.Address = req.Address
	hotel.ContactNo = req.ContactNo
	hotel.Email = req.Email
	hotel.Website = req.Website
	hotel.PricePerNight = req.PricePerNight
	hotel.Category = req.Category
	hotel.Amenities = utils.JSONList(req.Amenities)
	hotel.RoomTypes = utils.JSONList(req.RoomTypes)
	hotel.Images = utils.JSONList(req.Images)
	if req.RoomInventory > 0 {
		hotel.RoomInventory = req.RoomInventory
	}

	if err := ctrl.DB.Save(&hotel).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Hotel updated successfully", gin.H{"hotel": hotel})
}

// DeleteHotel deactivates the hotel instead of removing the row, so past
// bookings keep their reference.
func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	var hotel models.Hotel
	err := ctrl.DB.First(&hotel, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Hotel not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctrl.DB.Model(&hotel).Update("is_active", false).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Hotel deleted successfully", nil)
}
