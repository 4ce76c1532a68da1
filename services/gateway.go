package services

import (
	"context"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is a provider-side order created before collecting payment.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// GatewayPayment is the provider's authoritative view of a payment attempt.
type GatewayPayment struct {
	ID     string
	Status string
	Amount int64
	Method string
}

// PaymentGateway is the injected collaborator for the payment provider.
// Amounts are in minor units (paise). Implementations must honour the
// caller's context deadline and return ErrGatewayTimeout when it expires.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
	KeyID() string
}

// RazorpayGateway backs PaymentGateway with the official SDK. The SDK's
// calls are blocking, so each one runs in a goroutine raced against the
// caller's context.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	body, err := raceGateway(ctx, func() (map[string]interface{}, error) {
		return g.client.Order.Create(data, nil)
	})
	if err != nil {
		return nil, err
	}

	return &GatewayOrder{
		ID:       asString(body["id"]),
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
	}, nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	body, err := raceGateway(ctx, func() (map[string]interface{}, error) {
		return g.client.Payment.Fetch(paymentID, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	return &GatewayPayment{
		ID:     asString(body["id"]),
		Status: asString(body["status"]),
		Amount: asInt64(body["amount"]),
		Method: asString(body["method"]),
	}, nil
}

type gatewayResult struct {
	body map[string]interface{}
	err  error
}

func raceGateway(ctx context.Context, call func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	done := make(chan gatewayResult, 1)
	go func() {
		body, err := call()
		done <- gatewayResult{body, err}
	}()

	select {
	case res := <-done:
		return res.body, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrGatewayTimeout
		}
		return nil, ctx.Err()
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

var _ PaymentGateway = (*RazorpayGateway)(nil)
