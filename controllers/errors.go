package controllers

import (
	"errors"
	"log"
	"net/http"

	"tourism-backend/services"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service errors into HTTP responses:
// 4xx for caller mistakes and policy violations, 404 for missing
// resources, 5xx only for infrastructure and gateway failures.
func respondServiceError(c *gin.Context, err error) {
	var capErr *services.CapacityError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrAccessDenied):
		utils.JSONError(c, http.StatusForbidden, "Access denied")
	case errors.As(err, &capErr):
		utils.JSONError(c, http.StatusBadRequest, capErr.Error())
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, services.ErrAlreadyPaid):
		utils.JSONError(c, http.StatusBadRequest, "Booking is already paid")
	case errors.Is(err, services.ErrBookingCancelled):
		utils.JSONError(c, http.StatusBadRequest, "Cannot pay for cancelled booking")
	case errors.Is(err, services.ErrInvalidSignature):
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment signature")
	case errors.Is(err, services.ErrPaymentVerificationFailed):
		utils.JSONError(c, http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, services.ErrGatewayTimeout):
		utils.JSONError(c, http.StatusGatewayTimeout, "Payment gateway timed out")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}
