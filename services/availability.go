package services

import (
	"time"

	"tourism-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService counts rooms already committed for a hotel, room type
// and date range. The check is advisory: it is not serialized against the
// subsequent insert, so two concurrent requests can both pass it.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// BookedRooms sums numberOfRooms across Pending and Confirmed bookings
// whose stay overlaps [checkIn, checkOut). Overlap is the standard
// three-branch interval test: an existing stay starting inside the range,
// ending inside the range, or fully containing it.
func (s *AvailabilityService) BookedRooms(hotelID uint, roomType string, checkIn, checkOut time.Time) (int, error) {
	var booked int64
	err := s.DB.Model(&models.Booking{}).
		Where("hotel_id = ? AND room_type = ?", hotelID, roomType).
		Where("booking_status IN ?", []string{models.BookingConfirmed, models.BookingPending}).
		Where(
			s.DB.Where("check_in_date >= ? AND check_in_date < ?", checkIn, checkOut).
				Or("check_out_date > ? AND check_out_date <= ?", checkIn, checkOut).
				Or("check_in_date <= ? AND check_out_date >= ?", checkIn, checkOut),
		).
		Select("COALESCE(SUM(number_of_rooms), 0)").
		Scan(&booked).Error
	if err != nil {
		return 0, err
	}
	return int(booked), nil
}

// Check fails with a CapacityError naming the remaining rooms when the
// requested count does not fit the hotel's inventory for those dates.
func (s *AvailabilityService) Check(hotel *models.Hotel, roomType string, checkIn, checkOut time.Time, requestedRooms int) error {
	booked, err := s.BookedRooms(hotel.ID, roomType, checkIn, checkOut)
	if err != nil {
		return err
	}
	capacity := hotel.Capacity()
	if booked+requestedRooms > capacity {
		return &CapacityError{Available: capacity - booked}
	}
	return nil
}
