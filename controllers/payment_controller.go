package controllers

import (
	"io"
	"net/http"

	"tourism-backend/middleware"
	"tourism-backend/services"
	"tourism-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CreateOrder opens a gateway order for the booking so the client can
// collect payment.
func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.PaymentSvc.CreateOrder(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Payment order created", gin.H{"order": order})
}

// VerifyPayment accepts the client-side proof of payment returned by the
// gateway checkout.
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing payment verification details")
		return
	}

	booking, payment, err := ctrl.PaymentSvc.VerifyPayment(
		c.Request.Context(),
		middleware.UserID(c),
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Payment verified successfully", gin.H{
		"booking": booking,
		"payment": gin.H{
			"id":     payment.ID,
			"status": payment.Status,
			"method": payment.Method,
		},
	})
}

// Webhook receives gateway notifications. The signature covers the raw
// body, so it must be read before any binding touches the request.
func (ctrl *PaymentController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unreadable webhook body")
		return
	}

	if err := ctrl.PaymentSvc.HandleWebhook(body, c.GetHeader("X-Razorpay-Signature")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
