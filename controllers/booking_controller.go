package controllers

import (
	"net/http"
	"strconv"
	"time"

	"tourism-backend/middleware"
	"tourism-backend/services"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type CreateBookingRequest struct {
	Hotel           uint    `json:"hotel" binding:"required"`
	CheckInDate     string  `json:"checkInDate" binding:"required"`
	CheckOutDate    string  `json:"checkOutDate" binding:"required"`
	RoomType        string  `json:"roomType" binding:"required"`
	NumberOfRooms   int     `json:"numberOfRooms" binding:"required,min=1,max=10"`
	GuestName       string  `json:"guestName" binding:"required,guestname"`
	GuestEmail      string  `json:"guestEmail" binding:"required,email"`
	GuestPhone      string  `json:"guestPhone" binding:"required,phone"`
	NumberOfGuests  int     `json:"numberOfGuests" binding:"required,min=1,max=20"`
	SpecialRequests string  `json:"specialRequests" binding:"max=500"`
	PricePerNight   float64 `json:"pricePerNight" binding:"required,gte=0"`
	PaymentMethod   string  `json:"paymentMethod"`
}

type UpdateStatusRequest struct {
	BookingStatus      string `json:"bookingStatus" binding:"required"`
	CancellationReason string `json:"cancellationReason"`
}

type UpdatePaymentRequest struct {
	PaymentStatus    string `json:"paymentStatus" binding:"required"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
}

type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason" binding:"required"`
}

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{UserID: middleware.UserID(c), IsAdmin: middleware.IsAdmin(c)}
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// GetBookings lists bookings with optional status/paymentStatus/hotelId
// filters. Non-admins only ever see their own.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	hotelID, _ := strconv.ParseUint(c.Query("hotelId"), 10, 64)

	bookings, total, err := ctrl.BookingSvc.List(actorFrom(c), services.ListFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		HotelID:       uint(hotelID),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetMyBookings is the user-facing history listing.
func (ctrl *BookingController) GetMyBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	actor := actorFrom(c)
	actor.IsAdmin = false // always scoped to the caller

	bookings, total, err := ctrl.BookingSvc.List(actor, services.ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

func (ctrl *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(actorFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	checkIn, ok := parseDate(req.CheckInDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check-in date format")
		return
	}
	checkOut, ok := parseDate(req.CheckOutDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check-out date format")
		return
	}

	booking, err := ctrl.BookingSvc.Create(actorFrom(c), services.CreateBookingInput{
		HotelID:         req.Hotel,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		RoomType:        req.RoomType,
		NumberOfRooms:   req.NumberOfRooms,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		PricePerNight:   req.PricePerNight,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": booking})
}

func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(actorFrom(c), id, req.BookingStatus, req.CancellationReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking status updated successfully", gin.H{"booking": booking})
}

func (ctrl *BookingController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.UpdatePayment(actorFrom(c), id, req.PaymentStatus, req.GatewayOrderID, req.GatewayPaymentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Payment status updated successfully", gin.H{"booking": booking})
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Cancellation reason is required")
		return
	}

	booking, err := ctrl.BookingSvc.Cancel(actorFrom(c), id, req.CancellationReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking cancelled successfully", gin.H{
		"refundAmount": booking.RefundAmount,
		"booking":      booking,
	})
}

// GetBookingStats is the administrator report over an optional date range.
func (ctrl *BookingController) GetBookingStats(c *gin.Context) {
	var startDate, endDate *time.Time
	if s, ok := parseDate(c.Query("startDate")); ok {
		startDate = &s
	}
	if e, ok := parseDate(c.Query("endDate")); ok {
		endDate = &e
	}

	stats, err := ctrl.BookingSvc.Stats(actorFrom(c), startDate, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
