package services

import (
	"testing"
	"time"

	"tourism-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.Hotel{},
		&models.Booking{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "x",
		IsAdmin:   isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHotel(t *testing.T, db *gorm.DB, inventory int) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{
		Name:          "Lakeview Inn",
		Location:      "Pokhara",
		PricePerNight: 1000,
		Category:      models.HotelMidRange,
		RoomInventory: inventory,
		IsActive:      true,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func seedBooking(t *testing.T, db *gorm.DB, userID, hotelID uint, mutate func(*models.Booking)) *models.Booking {
	t.Helper()
	now := time.Now()
	booking := &models.Booking{
		UserID:        userID,
		HotelID:       hotelID,
		CheckInDate:   now.Add(5 * 24 * time.Hour),
		CheckOutDate:  now.Add(7 * 24 * time.Hour),
		RoomType:      "Deluxe",
		NumberOfRooms: 1,
		GuestName:     "Asha Rai",
		GuestEmail:    "asha@example.com",
		GuestPhone:    "+977 9800000000",
		PricePerNight: 1000,
		TotalAmount:   2000,
		TaxAmount:     360,
		FinalAmount:   2360,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingPending,
	}
	if mutate != nil {
		mutate(booking)
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
