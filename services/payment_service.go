package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"tourism-backend/models"

	"gorm.io/gorm"
)

// Currency for all gateway orders. Multi-currency is out of scope.
const OrderCurrency = "INR"

// DefaultGatewayTimeout bounds every outbound gateway call so a hung
// provider does not hold the request forever.
const DefaultGatewayTimeout = 15 * time.Second

// PaymentService owns the three reconciliation entry points: order
// creation, client-side verification and webhook processing. All three
// converge on the booking row keyed by gateway_order_id and are written to
// be mutually idempotent.
type PaymentService struct {
	DB            *gorm.DB
	Gateway       PaymentGateway
	KeySecret     string
	WebhookSecret string
	Timeout       time.Duration
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway, keySecret, webhookSecret string) *PaymentService {
	return &PaymentService{
		DB:            db,
		Gateway:       gateway,
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
		Timeout:       DefaultGatewayTimeout,
	}
}

// OrderDetails is returned to the client for collecting payment.
type OrderDetails struct {
	OrderID  string  `json:"orderId"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
	Booking  Summary `json:"booking"`
}

// Summary is the slice of a booking the payment client needs.
type Summary struct {
	ID          uint    `json:"id"`
	GuestName   string  `json:"guestName"`
	GuestEmail  string  `json:"guestEmail"`
	GuestPhone  string  `json:"guestPhone"`
	FinalAmount float64 `json:"finalAmount"`
}

// CreateOrder requests a gateway order for the booking's final amount and
// persists the returned order id. Only the booking owner may pay.
func (s *PaymentService) CreateOrder(ctx context.Context, bookingID, userID uint) (*OrderDetails, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrAccessDenied
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.BookingStatus == models.BookingCancelled {
		return nil, ErrBookingCancelled
	}

	amount := int64(math.Round(booking.FinalAmount * 100))
	receipt := fmt.Sprintf("booking_%d", booking.ID)
	notes := map[string]interface{}{
		"bookingId": fmt.Sprintf("%d", booking.ID),
		"userId":    fmt.Sprintf("%d", userID),
		"hotelId":   fmt.Sprintf("%d", booking.HotelID),
	}

	callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	order, err := s.Gateway.CreateOrder(callCtx, amount, OrderCurrency, receipt, notes)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&booking).Update("gateway_order_id", order.ID).Error; err != nil {
		return nil, err
	}

	return &OrderDetails{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.Gateway.KeyID(),
		Booking: Summary{
			ID:          booking.ID,
			GuestName:   booking.GuestName,
			GuestEmail:  booking.GuestEmail,
			GuestPhone:  booking.GuestPhone,
			FinalAmount: booking.FinalAmount,
		},
	}, nil
}

// VerifyPayment handles the client-submitted proof of payment. The
// signature is checked before any state is touched; only a gateway-reported
// "captured" status marks the booking paid.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID uint, orderID, paymentID, signature string) (*models.Booking, *GatewayPayment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, nil, validationf("missing payment verification details")
	}

	var booking models.Booking
	if err := s.DB.Where("gateway_order_id = ?", orderID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if booking.UserID != userID {
		return nil, nil, ErrAccessDenied
	}

	expected := hmacHex(s.KeySecret, []byte(orderID+"|"+paymentID))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, nil, ErrInvalidSignature
	}

	callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	payment, err := s.Gateway.FetchPayment(callCtx, paymentID)
	if err != nil {
		return nil, nil, err
	}

	if payment.Status != "captured" {
		if err := s.DB.Model(&booking).Update("payment_status", models.PaymentFailed).Error; err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrPaymentVerificationFailed
	}

	if err := s.markPaid(&booking, paymentID); err != nil {
		return nil, nil, err
	}
	return &booking, payment, nil
}

// webhookEvent is the slice of the gateway's webhook body this service
// dispatches on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook verifies the HMAC over the raw body and applies the event.
// Once the signature passes, every outcome is an acknowledgment: lookup
// misses are logged, never surfaced, so the gateway does not retry forever.
func (s *PaymentService) HandleWebhook(body []byte, signature string) error {
	secret := s.WebhookSecret
	if secret == "" {
		secret = s.KeySecret
	}

	expected := hmacHex(secret, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("webhook: unreadable event body: %v", err)
		return nil
	}

	switch event.Event {
	case "payment.captured":
		s.applyCaptured(event.Payload.Payment.Entity.OrderID, event.Payload.Payment.Entity.ID)
	case "payment.failed":
		s.applyFailed(event.Payload.Payment.Entity.OrderID)
	default:
		log.Printf("webhook: unhandled event type %q", event.Event)
	}
	return nil
}

// applyCaptured confirms the booking for a captured payment. Applying the
// same event twice, or racing the verify path, converges on Paid/Confirmed.
func (s *PaymentService) applyCaptured(orderID, paymentID string) {
	if orderID == "" {
		log.Printf("webhook: payment.captured without order id")
		return
	}

	var booking models.Booking
	if err := s.DB.Where("gateway_order_id = ?", orderID).First(&booking).Error; err != nil {
		log.Printf("webhook: no booking for order %s: %v", orderID, err)
		return
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return
	}
	if err := s.markPaid(&booking, paymentID); err != nil {
		log.Printf("webhook: failed to confirm booking %d: %v", booking.ID, err)
	}
}

// applyFailed records a failed attempt. The payment status flips to Failed
// unconditionally; the booking status is left alone.
func (s *PaymentService) applyFailed(orderID string) {
	if orderID == "" {
		log.Printf("webhook: payment.failed without order id")
		return
	}

	var booking models.Booking
	if err := s.DB.Where("gateway_order_id = ?", orderID).First(&booking).Error; err != nil {
		log.Printf("webhook: no booking for failed order %s: %v", orderID, err)
		return
	}
	if err := s.DB.Model(&booking).Update("payment_status", models.PaymentFailed).Error; err != nil {
		log.Printf("webhook: failed to mark booking %d failed: %v", booking.ID, err)
	}
}

// markPaid records the captured payment and confirms the booking in one
// update. Payment confirmation implicitly advances a Pending booking.
func (s *PaymentService) markPaid(booking *models.Booking, paymentID string) error {
	updates := map[string]interface{}{
		"payment_status":     models.PaymentPaid,
		"gateway_payment_id": paymentID,
	}
	if booking.BookingStatus == models.BookingPending {
		updates["booking_status"] = models.BookingConfirmed
	}
	if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
		return err
	}
	booking.PaymentStatus = models.PaymentPaid
	booking.GatewayPaymentID = &paymentID
	if v, ok := updates["booking_status"]; ok {
		booking.BookingStatus = v.(string)
	}
	return nil
}

func hmacHex(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
