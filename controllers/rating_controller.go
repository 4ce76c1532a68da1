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

type RatingController struct {
	DB *gorm.DB
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{DB: db}
}

type RatingRequest struct {
	RatingType    string   `json:"ratingType" binding:"required,oneof=Hotel Place SubPlace"`
	TargetID      uint     `json:"targetId" binding:"required"`
	Rating        int      `json:"rating" binding:"required,min=1,max=5"`
	Title         string   `json:"title" binding:"required,max=128"`
	Comment       string   `json:"comment" binding:"required,max=2000"`
	Cleanliness   int      `json:"cleanliness" binding:"omitempty,min=1,max=5"`
	Service       int      `json:"service" binding:"omitempty,min=1,max=5"`
	Location      int      `json:"location" binding:"omitempty,min=1,max=5"`
	ValueForMoney int      `json:"valueForMoney" binding:"omitempty,min=1,max=5"`
	Images        []string `json:"images"`
}

type AdminResponseRequest struct {
	AdminResponse string `json:"adminResponse" binding:"required,max=2000"`
}

// GetRatings lists approved ratings for one target, newest first.
func (ctrl *RatingController) GetRatings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := ctrl.DB.Model(&models.Rating{}).Where("is_approved = ?", true)
	if ratingType := c.Query("ratingType"); ratingType != "" {
		query = query.Where("rating_type = ?", ratingType)
	}
	if hotelID := c.Query("hotelId"); hotelID != "" {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if placeID := c.Query("placeId"); placeID != "" {
		query = query.Where("place_id = ?", placeID)
	}
	if subPlaceID := c.Query("subPlaceId"); subPlaceID != "" {
		query = query.Where("sub_place_id = ?", subPlaceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var ratings []models.Rating
	if err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":    ratings,
		"pagination": utils.NewListMeta(page, limit, total),
	})
}

// CreateRating records a review. One review per user per target; a second
// submission updates the first.
func (ctrl *RatingController) CreateRating(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.UserID(c)

	rating := models.Rating{
		UserID:        userID,
		RatingType:    req.RatingType,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
		Cleanliness:   req.Cleanliness,
		Service:       req.Service,
		Location:      req.Location,
		ValueForMoney: req.ValueForMoney,
		Images:        utils.JSONList(req.Images),
		IsApproved:    true,
	}

	var existingQuery *gorm.DB
	switch req.RatingType {
	case models.RatingHotel:
		var hotel models.Hotel
		if err := ctrl.DB.First(&hotel, req.TargetID).Error; err != nil {
			utils.JSONError(c, http.StatusNotFound, "Hotel not found")
			return
		}
		rating.HotelID = &req.TargetID
		existingQuery = ctrl.DB.Where("user_id = ? AND hotel_id = ?", userID, req.TargetID)
	case models.RatingPlace:
		var place models.Place
		if err := ctrl.DB.First(&place, req.TargetID).Error; err != nil {
			utils.JSONError(c, http.StatusNotFound, "Place not found")
			return
		}
		rating.PlaceID = &req.TargetID
		existingQuery = ctrl.DB.Where("user_id = ? AND place_id = ?", userID, req.TargetID)
	case models.RatingSubPlace:
		var subPlace models.SubPlace
		if err := ctrl.DB.First(&subPlace, req.TargetID).Error; err != nil {
			utils.JSONError(c, http.StatusNotFound, "Sub-place not found")
			return
		}
		rating.SubPlaceID = &req.TargetID
		existingQuery = ctrl.DB.Where("user_id = ? AND sub_place_id = ?", userID, req.TargetID)
	}

	var existing models.Rating
	err := existingQuery.First(&existing).Error
	switch {
	case err == nil:
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
		if err := ctrl.DB.Save(&rating).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := ctrl.DB.Create(&rating).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	default:
		respondServiceError(c, err)
		return
	}

	if rating.RatingType == models.RatingHotel {
		if err := ctrl.refreshHotelRating(*rating.HotelID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	utils.JSONMessage(c, http.StatusCreated, "Rating submitted successfully", gin.H{"rating": rating})
}

func (ctrl *RatingController) DeleteRating(c *gin.Context) {
	var rating models.Rating
	err := ctrl.DB.First(&rating, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Rating not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if rating.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		utils.JSONError(c, http.StatusForbidden, "Access denied")
		return
	}

	if err := ctrl.DB.Delete(&rating).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if rating.RatingType == models.RatingHotel && rating.HotelID != nil {
		if err := ctrl.refreshHotelRating(*rating.HotelID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	utils.JSONMessage(c, http.StatusOK, "Rating deleted successfully", nil)
}

// MarkHelpful bumps the helpful counter.
func (ctrl *RatingController) MarkHelpful(c *gin.Context) {
	result := ctrl.DB.Model(&models.Rating{}).
		Where("id = ?", c.Param("id")).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "Rating not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Marked as helpful", nil)
}

// RespondToRating attaches an administrator reply to a review.
func (ctrl *RatingController) RespondToRating(c *gin.Context) {
	var req AdminResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var rating models.Rating
	err := ctrl.DB.First(&rating, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Rating not found")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctrl.DB.Model(&rating).Update("admin_response", req.AdminResponse).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Response added successfully", gin.H{"rating": rating})
}

// refreshHotelRating recomputes the denormalized average and review count.
func (ctrl *RatingController) refreshHotelRating(hotelID uint) error {
	var stats struct {
		Average float64
		Count   int64
	}
	err := ctrl.DB.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("hotel_id = ? AND is_approved = ?", hotelID, true).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return ctrl.DB.Model(&models.Hotel{}).
		Where("id = ?", hotelID).
		Updates(map[string]interface{}{
			"average_rating": stats.Average,
			"total_reviews":  stats.Count,
		}).Error
}
