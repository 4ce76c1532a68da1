package services

import (
	"context"
	"encoding/json"
	"testing"

	"tourism-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	createCalls int
	order       GatewayOrder
	payment     GatewayPayment
	err         error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	order := f.order
	if order.ID == "" {
		order.ID = "order_test"
	}
	order.Amount = amount
	order.Currency = currency
	return &order, nil
}

func (f *fakeGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	if f.err != nil {
		return nil, f.err
	}
	payment := f.payment
	payment.ID = paymentID
	return &payment, nil
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func newPaymentHarness(t *testing.T) (*gorm.DB, *PaymentService, *fakeGateway) {
	t.Helper()
	db := newTestDB(t)
	gw := &fakeGateway{payment: GatewayPayment{Status: "captured", Method: "card"}}
	svc := NewPaymentService(db, gw, "key_secret", "webhook_secret")
	return db, svc, gw
}

func reload(t *testing.T, db *gorm.DB, id uint) *models.Booking {
	t.Helper()
	var booking models.Booking
	require.NoError(t, db.First(&booking, id).Error)
	return &booking
}

func TestCreateOrder(t *testing.T) {
	db, svc, gw := newPaymentHarness(t)
	owner := seedUser(t, db, "owner@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	hotel := seedHotel(t, db, 10)
	booking := seedBooking(t, db, owner.ID, hotel.ID, nil)

	t.Run("creates and persists the order", func(t *testing.T) {
		order, err := svc.CreateOrder(context.Background(), booking.ID, owner.ID)
		require.NoError(t, err)

		assert.Equal(t, "order_test", order.OrderID)
		assert.EqualValues(t, 236000, order.Amount) // 2360.00 in paise
		assert.Equal(t, OrderCurrency, order.Currency)
		assert.Equal(t, "rzp_test_key", order.KeyID)
		assert.Equal(t, booking.ID, order.Booking.ID)

		got := reload(t, db, booking.ID)
		require.NotNil(t, got.GatewayOrderID)
		assert.Equal(t, "order_test", *got.GatewayOrderID)
	})

	t.Run("only the owner may pay", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), booking.ID, other.ID)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), 9999, owner.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already paid", func(t *testing.T) {
		paid := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
			b.PaymentStatus = models.PaymentPaid
		})
		_, err := svc.CreateOrder(context.Background(), paid.ID, owner.ID)
		require.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		cancelled := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
			b.BookingStatus = models.BookingCancelled
		})
		_, err := svc.CreateOrder(context.Background(), cancelled.ID, owner.ID)
		require.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("gateway failure reaches the caller", func(t *testing.T) {
		gw.err = ErrGatewayTimeout
		defer func() { gw.err = nil }()
		fresh := seedBooking(t, db, owner.ID, hotel.ID, nil)
		_, err := svc.CreateOrder(context.Background(), fresh.ID, owner.ID)
		require.ErrorIs(t, err, ErrGatewayTimeout)
	})
}

func TestVerifyPayment(t *testing.T) {
	db, svc, gw := newPaymentHarness(t)
	owner := seedUser(t, db, "owner@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	hotel := seedHotel(t, db, 10)

	orderID := "order_verify"
	booking := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
		b.GatewayOrderID = &orderID
	})
	signature := hmacHex("key_secret", []byte(orderID+"|pay_1"))

	t.Run("wrong owner", func(t *testing.T) {
		_, _, err := svc.VerifyPayment(context.Background(), other.ID, orderID, "pay_1", signature)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("tampered signature leaves the booking untouched", func(t *testing.T) {
		bad := []byte(signature)
		bad[0] ^= 1
		_, _, err := svc.VerifyPayment(context.Background(), owner.ID, orderID, "pay_1", string(bad))
		require.ErrorIs(t, err, ErrInvalidSignature)

		got := reload(t, db, booking.ID)
		assert.Equal(t, models.PaymentPending, got.PaymentStatus)
		assert.Equal(t, models.BookingPending, got.BookingStatus)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.VerifyPayment(context.Background(), owner.ID, orderID, "", signature)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, _, err := svc.VerifyPayment(context.Background(), owner.ID, "order_nope", "pay_1", signature)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("captured payment confirms the booking", func(t *testing.T) {
		got, payment, err := svc.VerifyPayment(context.Background(), owner.ID, orderID, "pay_1", signature)
		require.NoError(t, err)

		assert.Equal(t, "captured", payment.Status)
		assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)

		persisted := reload(t, db, booking.ID)
		require.NotNil(t, persisted.GatewayPaymentID)
		assert.Equal(t, "pay_1", *persisted.GatewayPaymentID)
	})

	t.Run("non-captured payment fails verification", func(t *testing.T) {
		failedOrder := "order_authorized"
		pending := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
			b.GatewayOrderID = &failedOrder
		})
		gw.payment.Status = "authorized"
		defer func() { gw.payment.Status = "captured" }()

		sig := hmacHex("key_secret", []byte(failedOrder+"|pay_2"))
		_, _, err := svc.VerifyPayment(context.Background(), owner.ID, failedOrder, "pay_2", sig)
		require.ErrorIs(t, err, ErrPaymentVerificationFailed)

		got := reload(t, db, pending.ID)
		assert.Equal(t, models.PaymentFailed, got.PaymentStatus)
		assert.Equal(t, models.BookingPending, got.BookingStatus)
	})
}

func webhookBody(t *testing.T, event, orderID, paymentID, status string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       paymentID,
					"order_id": orderID,
					"status":   status,
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestHandleWebhook(t *testing.T) {
	db, svc, _ := newPaymentHarness(t)
	owner := seedUser(t, db, "owner@example.com", false)
	hotel := seedHotel(t, db, 10)

	orderID := "order_hook"
	booking := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
		b.GatewayOrderID = &orderID
	})

	sign := func(body []byte) string { return hmacHex("webhook_secret", body) }

	t.Run("bad signature is rejected", func(t *testing.T) {
		body := webhookBody(t, "payment.captured", orderID, "pay_hook", "captured")
		err := svc.HandleWebhook(body, "deadbeef")
		require.ErrorIs(t, err, ErrInvalidSignature)

		got := reload(t, db, booking.ID)
		assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	})

	t.Run("captured event confirms, twice is idempotent", func(t *testing.T) {
		body := webhookBody(t, "payment.captured", orderID, "pay_hook", "captured")
		require.NoError(t, svc.HandleWebhook(body, sign(body)))
		require.NoError(t, svc.HandleWebhook(body, sign(body)))

		got := reload(t, db, booking.ID)
		assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
		require.NotNil(t, got.GatewayPaymentID)
		assert.Equal(t, "pay_hook", *got.GatewayPaymentID)
	})

	t.Run("failed event flips payment but not booking status", func(t *testing.T) {
		failedOrder := "order_hook_failed"
		pending := seedBooking(t, db, owner.ID, hotel.ID, func(b *models.Booking) {
			b.GatewayOrderID = &failedOrder
			b.BookingStatus = models.BookingConfirmed
		})

		body := webhookBody(t, "payment.failed", failedOrder, "pay_fail", "failed")
		require.NoError(t, svc.HandleWebhook(body, sign(body)))

		got := reload(t, db, pending.ID)
		assert.Equal(t, models.PaymentFailed, got.PaymentStatus)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
	})

	t.Run("unknown order is acknowledged", func(t *testing.T) {
		body := webhookBody(t, "payment.captured", "order_missing", "pay_x", "captured")
		require.NoError(t, svc.HandleWebhook(body, sign(body)))
	})

	t.Run("unknown event is acknowledged", func(t *testing.T) {
		body := webhookBody(t, "refund.processed", orderID, "pay_hook", "processed")
		require.NoError(t, svc.HandleWebhook(body, sign(body)))
	})

	t.Run("falls back to the key secret without a webhook secret", func(t *testing.T) {
		svc.WebhookSecret = ""
		defer func() { svc.WebhookSecret = "webhook_secret" }()

		body := webhookBody(t, "refund.processed", orderID, "pay_hook", "processed")
		require.NoError(t, svc.HandleWebhook(body, hmacHex("key_secret", body)))
	})
}
