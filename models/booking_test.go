package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNightsBetween(t *testing.T) {
	base := time.Date(2027, 1, 10, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, NightsBetween(base, base.Add(48*time.Hour)))
	assert.Equal(t, 2, NightsBetween(base, base.Add(30*time.Hour)), "partial day rounds up")
	assert.Equal(t, 1, NightsBetween(base, base.Add(time.Hour)))
	assert.Equal(t, 0, NightsBetween(base, base))
	assert.Equal(t, 2, NightsBetween(base.Add(48*time.Hour), base), "reversed dates still count")
}

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC)

	booking := func(status string, hoursAhead float64) *Booking {
		return &Booking{
			BookingStatus: status,
			CheckInDate:   now.Add(time.Duration(hoursAhead * float64(time.Hour))),
		}
	}

	assert.True(t, booking(BookingPending, 72).CanBeCancelled(now))
	assert.True(t, booking(BookingConfirmed, 25).CanBeCancelled(now))
	assert.False(t, booking(BookingPending, 24).CanBeCancelled(now), "exactly 24 hours is too late")
	assert.False(t, booking(BookingPending, 10).CanBeCancelled(now))
	assert.False(t, booking(BookingCancelled, 72).CanBeCancelled(now))
	assert.False(t, booking(BookingCompleted, 72).CanBeCancelled(now))
}

func TestCalculateRefund(t *testing.T) {
	now := time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC)

	booking := func(hoursAhead float64) *Booking {
		return &Booking{
			BookingStatus: BookingConfirmed,
			FinalAmount:   2360,
			CheckInDate:   now.Add(time.Duration(hoursAhead * float64(time.Hour))),
		}
	}

	assert.InDelta(t, 2360, booking(72).CalculateRefund(now), 0.001, "full refund beyond 48 hours")
	assert.InDelta(t, 1180, booking(48).CalculateRefund(now), 0.001, "exactly 48 hours is the half tier")
	assert.InDelta(t, 1180, booking(36).CalculateRefund(now), 0.001)
	assert.InDelta(t, 0, booking(24).CalculateRefund(now), 0.001)
	assert.InDelta(t, 0, booking(10).CalculateRefund(now), 0.001)

	cancelled := booking(72)
	cancelled.BookingStatus = BookingCancelled
	assert.InDelta(t, 0, cancelled.CalculateRefund(now), 0.001)
}
