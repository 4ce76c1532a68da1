package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tourism-backend/middleware"
	"tourism-backend/models"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PackageController struct {
	DB *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db}
}

type PackageRequest struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Difficulty         string          `json:"difficulty" binding:"omitempty,oneof=Easy Moderate Challenging"`
	Duration           int             `json:"duration" binding:"required,min=1"`
	Price              float64         `json:"price" binding:"required,gte=0"`
	DiscountedPrice    float64         `json:"discountedPrice" binding:"gte=0"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	Itinerary          json.RawMessage `json:"itinerary"`
	Highlights         []string        `json:"highlights"`
	Included           []string        `json:"included"`
	Excluded           []string        `json:"excluded"`
	Images             []string        `json:"images"`
	CoverImage         string          `json:"coverImage"`
	AvailableSlots     int             `json:"availableSlots" binding:"gte=0"`
	CancellationPolicy string          `json:"cancellationPolicy"`
}

func (ctrl *PackageController) GetPackages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := ctrl.DB.Model(&models.Package{}).Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		query = query.Where("price <= ?", maxPrice)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var packages []models.Package
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&packages).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"packages":   packages,
		"pagination": utils.NewListMeta(page, limit, total),
	})
}

func (ctrl *PackageController) GetPackageByID(c *gin.Context) {
	var pkg models.Package
	err := ctrl.DB.First(&pkg, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

func (ctrl *PackageController) CreatePackage(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg := models.Package{
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		Difficulty:         req.Difficulty,
		Duration:           req.Duration,
		Price:              req.Price,
		DiscountedPrice:    req.DiscountedPrice,
		Highlights:         utils.JSONList(req.Highlights),
		Included:           utils.JSONList(req.Included),
		Excluded:           utils.JSONList(req.Excluded),
		Images:             utils.JSONList(req.Images),
		CoverImage:         req.CoverImage,
		AvailableSlots:     req.AvailableSlots,
		CancellationPolicy: req.CancellationPolicy,
		IsActive:           true,
		CreatedByID:        middleware.UserID(c),
	}
	if len(req.Itinerary) > 0 {
		pkg.Itinerary = datatypes.JSON(req.Itinerary)
	}
	if start, ok := parseDate(req.StartDate); ok {
		pkg.StartDate = &start
	}
	if end, ok := parseDate(req.EndDate); ok {
		pkg.EndDate = &end
	}
	if pkg.StartDate != nil && pkg.EndDate != nil && !pkg.EndDate.After(*pkg.StartDate) {
		utils.JSONError(c, http.StatusBadRequest, "End date must be after start date")
		return
	}

	if err := ctrl.DB.Create(&pkg).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Package created successfully", gin.H{"package": pkg})
}

func (ctrl *PackageController) UpdatePackage(c *gin.Context) {
	var pkg models.Package
	err := ctrl.DB.First(&pkg, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg.Name = req.Name
	pkg.Description = req.Description
	pkg.Category = req.Category
	pkg.Difficulty = req.Difficulty
	pkg.Duration = req.Duration
	pkg.Price = req.Price
	pkg.DiscountedPrice = req.DiscountedPrice
	pkg.Highlights = utils.JSONList(req.Highlights)
	pkg.Included = utils.JSONList(req.Included)
	pkg.Excluded = utils.JSONList(req.Excluded)
	pkg.Images = utils.JSONList(req.Images)
	pkg.CoverImage = req.CoverImage
	pkg.AvailableSlots = req.AvailableSlots
	pkg.CancellationPolicy = req.CancellationPolicy
	if len(req.Itinerary) > 0 {
		pkg.Itinerary = datatypes.JSON(req.Itinerary)
	}
	if start, ok := parseDate(req.StartDate); ok {
		pkg.StartDate = &start
	}
	if end, ok := parseDate(req.EndDate); ok {
		pkg.EndDate = &end
	}

	if err := ctrl.DB.Save(&pkg).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Package updated successfully", gin.H{"package": pkg})
}

func (ctrl *PackageController) DeletePackage(c *gin.Context) {
	var pkg models.Package
	err := ctrl.DB.First(&pkg, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctrl.DB.Model(&pkg).Update("is_active", false).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Package deleted successfully", nil)
}
