package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses. Pending may move to Confirmed or Cancelled,
// Confirmed to Cancelled or Completed; Cancelled and Completed are terminal.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// Payment statuses. Failed may return to Pending for a retry.
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"
)

type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	UserID  uint `gorm:"index;not null" json:"userId"`
	HotelID uint `gorm:"index;not null" json:"hotelId"`

	CheckInDate    time.Time `gorm:"index" json:"checkInDate"`
	CheckOutDate   time.Time `gorm:"index" json:"checkOutDate"`
	NumberOfNights int       `json:"numberOfNights"`

	RoomType      string `gorm:"size:64" json:"roomType"`
	NumberOfRooms int    `json:"numberOfRooms"`

	GuestName       string `gorm:"size:128" json:"guestName"`
	GuestEmail      string `gorm:"size:128" json:"guestEmail"`
	GuestPhone      string `gorm:"size:32" json:"guestPhone"`
	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `gorm:"size:500" json:"specialRequests"`

	PricePerNight float64 `json:"pricePerNight"`
	TotalAmount   float64 `json:"totalAmount"`
	TaxAmount     float64 `json:"taxAmount"`
	FinalAmount   float64 `json:"finalAmount"`

	PaymentStatus string `gorm:"size:16;index;default:Pending" json:"paymentStatus"`
	PaymentMethod string `gorm:"size:64" json:"paymentMethod"`

	// Gateway ids are the reconciliation keys between order creation, client
	// verification and webhook delivery. Nullable so the unique index stays
	// sparse until an order is created.
	GatewayOrderID   *string `gorm:"column:gateway_order_id;size:64;uniqueIndex" json:"gatewayOrderId,omitempty"`
	GatewayPaymentID *string `gorm:"column:gateway_payment_id;size:64;uniqueIndex" json:"gatewayPaymentId,omitempty"`

	BookingStatus string `gorm:"size:16;index;default:Pending" json:"bookingStatus"`

	CancellationReason string     `gorm:"size:500" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	RefundAmount       float64    `json:"refundAmount"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// BeforeSave keeps the derived columns consistent with the date pair and the
// amount columns, so a booking persisted through any path satisfies
// numberOfNights == ceil(days) and finalAmount == totalAmount + taxAmount.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.CheckInDate.IsZero() && !b.CheckOutDate.IsZero() {
		b.NumberOfNights = NightsBetween(b.CheckInDate, b.CheckOutDate)
	}
	if b.FinalAmount == 0 {
		b.FinalAmount = b.TotalAmount + b.TaxAmount
	}
	if b.BookingStatus == BookingCancelled && b.CancelledAt == nil {
		now := time.Now()
		b.CancelledAt = &now
	}
	return nil
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ReferenceCode == "" {
		b.ReferenceCode = "BK-" + uuid.NewString()
	}
	return nil
}

// NightsBetween returns the ceiling of whole days between two instants,
// never negative.
func NightsBetween(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func (b *Booking) HoursUntilCheckIn(now time.Time) float64 {
	return b.CheckInDate.Sub(now).Hours()
}

// CanBeCancelled reports whether the booking is still cancellable: not in a
// terminal state and more than 24 hours before check-in.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return b.BookingStatus != BookingCancelled &&
		b.BookingStatus != BookingCompleted &&
		b.HoursUntilCheckIn(now) > 24
}

// CalculateRefund applies the cancellation policy: full refund with more
// than 48 hours to check-in, half between 24 and 48, otherwise nothing.
func (b *Booking) CalculateRefund(now time.Time) float64 {
	if !b.CanBeCancelled(now) {
		return 0
	}
	hours := b.HoursUntilCheckIn(now)
	switch {
	case hours > 48:
		return b.FinalAmount
	case hours > 24:
		return b.FinalAmount * 0.5
	default:
		return 0
	}
}
