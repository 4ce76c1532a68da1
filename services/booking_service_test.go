package services

import (
	"testing"
	"time"

	"tourism-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	user := seedUser(t, db, "guest@example.com", false)
	hotel := seedHotel(t, db, 10)

	now := time.Now()
	input := CreateBookingInput{
		HotelID:        hotel.ID,
		CheckInDate:    now.Add(5 * 24 * time.Hour),
		CheckOutDate:   now.Add(7 * 24 * time.Hour),
		RoomType:       "Deluxe",
		NumberOfRooms:  2,
		GuestName:      "Asha Rai",
		GuestEmail:     "asha@example.com",
		GuestPhone:     "+977 9800000000",
		NumberOfGuests: 4,
		PricePerNight:  1000,
		PaymentMethod:  "razorpay",
	}

	t.Run("prices and persists a pending booking", func(t *testing.T) {
		booking, err := svc.Create(Actor{UserID: user.ID}, input)
		require.NoError(t, err)

		assert.Equal(t, 2, booking.NumberOfNights)
		assert.InDelta(t, 2000, booking.TotalAmount, 0.001)
		assert.InDelta(t, 360, booking.TaxAmount, 0.001)
		assert.InDelta(t, 2360, booking.FinalAmount, 0.001)
		assert.Equal(t, models.BookingPending, booking.BookingStatus)
		assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
		assert.NotEmpty(t, booking.ReferenceCode)
		assert.Equal(t, hotel.Name, booking.Hotel.Name)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		bad := input
		bad.HotelID = 9999
		_, err := svc.Create(Actor{UserID: user.ID}, bad)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("past check-in", func(t *testing.T) {
		bad := input
		bad.CheckInDate = now.Add(-24 * time.Hour)
		_, err := svc.Create(Actor{UserID: user.ID}, bad)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("over capacity", func(t *testing.T) {
		bad := input
		bad.NumberOfRooms = 10
		_, err := svc.Create(Actor{UserID: user.ID}, bad)
		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
	})
}

func TestBookingAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	owner := seedUser(t, db, "owner@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	hotel := seedHotel(t, db, 10)
	booking := seedBooking(t, db, owner.ID, hotel.ID, nil)

	_, err := svc.GetByID(Actor{UserID: other.ID}, booking.ID)
	require.ErrorIs(t, err, ErrAccessDenied)

	got, err := svc.GetByID(Actor{UserID: owner.ID}, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetByID(Actor{UserID: admin.ID, IsAdmin: true}, booking.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(Actor{UserID: owner.ID}, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookingList(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	alice := seedUser(t, db, "alice@example.com", false)
	bob := seedUser(t, db, "bob@example.com", false)
	hotel := seedHotel(t, db, 10)

	for i := 0; i < 3; i++ {
		seedBooking(t, db, alice.ID, hotel.ID, nil)
	}
	seedBooking(t, db, bob.ID, hotel.ID, func(b *models.Booking) {
		b.BookingStatus = models.BookingConfirmed
	})

	t.Run("non-admin sees only their own", func(t *testing.T) {
		bookings, total, err := svc.List(Actor{UserID: alice.ID}, ListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, b := range bookings {
			assert.Equal(t, alice.ID, b.UserID)
		}
	})

	t.Run("admin sees everything with filters", func(t *testing.T) {
		_, total, err := svc.List(Actor{IsAdmin: true}, ListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)

		_, total, err = svc.List(Actor{IsAdmin: true}, ListFilter{Status: models.BookingConfirmed})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("pagination", func(t *testing.T) {
		bookings, total, err := svc.List(Actor{IsAdmin: true}, ListFilter{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, bookings, 1)
	})
}

func TestBookingStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	user := seedUser(t, db, "guest@example.com", false)
	hotel := seedHotel(t, db, 10)
	actor := Actor{UserID: user.ID}

	t.Run("pending to confirmed", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, nil)
		got, err := svc.UpdateStatus(actor, booking.ID, models.BookingConfirmed, "")
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
	})

	t.Run("pending to completed is invalid", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, nil)
		_, err := svc.UpdateStatus(actor, booking.ID, models.BookingCompleted, "")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.BookingStatus = models.BookingCompleted
		})
		_, err := svc.UpdateStatus(actor, booking.ID, models.BookingCancelled, "changed plans")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("cancellation requires a reason", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, nil)
		_, err := svc.UpdateStatus(actor, booking.ID, models.BookingCancelled, "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("cancellation inside the cutoff is rejected", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.CheckInDate = time.Now().Add(10 * time.Hour)
			b.CheckOutDate = time.Now().Add(34 * time.Hour)
		})
		_, err := svc.UpdateStatus(actor, booking.ID, models.BookingCancelled, "too late")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestBookingCancelRefund(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	user := seedUser(t, db, "guest@example.com", false)
	hotel := seedHotel(t, db, 10)
	actor := Actor{UserID: user.ID}

	t.Run("full refund beyond 48 hours", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.CheckInDate = time.Now().Add(72 * time.Hour)
			b.CheckOutDate = time.Now().Add(96 * time.Hour)
		})
		got, err := svc.Cancel(actor, booking.ID, "changed plans")
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, got.BookingStatus)
		assert.InDelta(t, booking.FinalAmount, got.RefundAmount, 0.001)
		assert.Equal(t, "changed plans", got.CancellationReason)
		assert.NotNil(t, got.CancelledAt)
	})

	t.Run("half refund between 24 and 48 hours", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.CheckInDate = time.Now().Add(30 * time.Hour)
			b.CheckOutDate = time.Now().Add(54 * time.Hour)
		})
		got, err := svc.Cancel(actor, booking.ID, "changed plans")
		require.NoError(t, err)
		assert.InDelta(t, booking.FinalAmount*0.5, got.RefundAmount, 0.001)
	})
}

func TestBookingPaymentTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	user := seedUser(t, db, "guest@example.com", false)
	hotel := seedHotel(t, db, 10)
	actor := Actor{UserID: user.ID}

	t.Run("paid confirms a pending booking", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, nil)
		got, err := svc.UpdatePayment(actor, booking.ID, models.PaymentPaid, "order_1", "pay_1")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
		require.NotNil(t, got.GatewayOrderID)
		assert.Equal(t, "order_1", *got.GatewayOrderID)
	})

	t.Run("paid leaves a confirmed booking alone", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.BookingStatus = models.BookingConfirmed
		})
		got, err := svc.UpdatePayment(actor, booking.ID, models.PaymentPaid, "", "")
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
	})

	t.Run("paid to pending is invalid", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.PaymentStatus = models.PaymentPaid
		})
		_, err := svc.UpdatePayment(actor, booking.ID, models.PaymentPending, "", "")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("failed may retry to pending", func(t *testing.T) {
		booking := seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
			b.PaymentStatus = models.PaymentFailed
		})
		got, err := svc.UpdatePayment(actor, booking.ID, models.PaymentPending, "", "")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	})
}

func TestBookingStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	user := seedUser(t, db, "guest@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	hotel := seedHotel(t, db, 10)

	seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
		b.BookingStatus = models.BookingConfirmed
		b.PaymentStatus = models.PaymentPaid
		b.FinalAmount = 2360
	})
	seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
		b.BookingStatus = models.BookingConfirmed
		b.PaymentStatus = models.PaymentPaid
		b.FinalAmount = 1180
	})
	seedBooking(t, db, user.ID, hotel.ID, func(b *models.Booking) {
		b.BookingStatus = models.BookingCancelled
		b.RefundAmount = 500
	})

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.Stats(Actor{UserID: user.ID}, nil, nil)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("aggregates", func(t *testing.T) {
		stats, err := svc.Stats(Actor{UserID: admin.ID, IsAdmin: true}, nil, nil)
		require.NoError(t, err)

		assert.EqualValues(t, 3, stats.TotalBookings)
		assert.EqualValues(t, 2, stats.ConfirmedBookings)
		assert.EqualValues(t, 1, stats.CancelledBookings)
		assert.InDelta(t, 3540, stats.Revenue.TotalRevenue, 0.001)
		assert.InDelta(t, 1770, stats.Revenue.AverageBookingValue, 0.001)

		require.NotEmpty(t, stats.MonthlyTrends)
		current := stats.MonthlyTrends[len(stats.MonthlyTrends)-1]
		assert.EqualValues(t, 3, current.Count)
		assert.InDelta(t, 3540, current.Revenue, 0.001)
	})

	t.Run("date range excludes everything in the past", func(t *testing.T) {
		start := time.Now().Add(-48 * time.Hour)
		end := time.Now().Add(-24 * time.Hour)
		stats, err := svc.Stats(Actor{IsAdmin: true}, &start, &end)
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.TotalBookings)
		assert.Empty(t, stats.MonthlyTrends)
	})
}
