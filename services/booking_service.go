package services

import (
	"errors"
	"sort"
	"time"

	"tourism-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Booking-status transition table. A target missing from the row is an
// invalid transition; terminal states have no row.
var bookingTransitions = map[string]map[string]bool{
	models.BookingPending:   {models.BookingConfirmed: true, models.BookingCancelled: true},
	models.BookingConfirmed: {models.BookingCancelled: true, models.BookingCompleted: true},
}

// Payment-status transition table. Failed → Pending allows a retry.
var paymentTransitions = map[string]map[string]bool{
	models.PaymentPending: {models.PaymentPaid: true, models.PaymentFailed: true},
	models.PaymentPaid:    {models.PaymentRefunded: true},
	models.PaymentFailed:  {models.PaymentPending: true},
}

// BookingService wraps *gorm.DB with the booking lifecycle: creation,
// authorization-aware reads, state transitions, cancellation and reporting.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Availability: NewAvailabilityService(db)}
}

// Actor identifies the caller for authorization checks.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

func (a Actor) mayAccess(b *models.Booking) bool {
	return a.IsAdmin || b.UserID == a.UserID
}

// CreateBookingInput carries the raw booking request. Pricing fields are
// recomputed server-side regardless of what the client sent.
type CreateBookingInput struct {
	HotelID         uint
	CheckInDate     time.Time
	CheckOutDate    time.Time
	RoomType        string
	NumberOfRooms   int
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	NumberOfGuests  int
	SpecialRequests string
	PricePerNight   float64
	PaymentMethod   string
}

// Create validates the request, prices the stay, checks availability and
// persists a Pending/Pending booking. The availability check and the insert
// are separate statements; overlapping requests can overcommit capacity.
func (s *BookingService) Create(actor Actor, in CreateBookingInput) (*models.Booking, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, in.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	quote, err := ComputeQuote(in.CheckInDate, in.CheckOutDate, in.PricePerNight, in.NumberOfRooms, now)
	if err != nil {
		return nil, err
	}

	if err := s.Availability.Check(&hotel, in.RoomType, in.CheckInDate, in.CheckOutDate, in.NumberOfRooms); err != nil {
		return nil, err
	}

	booking := models.Booking{
		UserID:          actor.UserID,
		HotelID:         in.HotelID,
		CheckInDate:     in.CheckInDate,
		CheckOutDate:    in.CheckOutDate,
		NumberOfNights:  quote.NumberOfNights,
		RoomType:        in.RoomType,
		NumberOfRooms:   in.NumberOfRooms,
		GuestName:       in.GuestName,
		GuestEmail:      in.GuestEmail,
		GuestPhone:      in.GuestPhone,
		NumberOfGuests:  in.NumberOfGuests,
		SpecialRequests: in.SpecialRequests,
		PricePerNight:   in.PricePerNight,
		TotalAmount:     quote.TotalAmount,
		TaxAmount:       quote.TaxAmount,
		FinalAmount:     quote.FinalAmount,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		BookingStatus:   models.BookingPending,
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, validationf("duplicate field value entered")
		}
		return nil, err
	}

	if err := s.DB.Preload("User").Preload("Hotel").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByID loads a booking with its relations. Non-admins only see their own.
func (s *BookingService) GetByID(actor Actor, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("User").Preload("Hotel").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.mayAccess(&booking) {
		return nil, ErrAccessDenied
	}
	return &booking, nil
}

// ListFilter narrows the booking listing. Non-admin callers are always
// restricted to their own bookings regardless of the filter.
type ListFilter struct {
	Status        string
	PaymentStatus string
	HotelID       uint
	Page          int
	Limit         int
}

func (s *BookingService) List(actor Actor, f ListFilter) ([]models.Booking, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	q := s.DB.Model(&models.Booking{})
	if !actor.IsAdmin {
		q = q.Where("user_id = ?", actor.UserID)
	}
	if f.Status != "" {
		q = q.Where("booking_status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := q.Preload("User").Preload("Hotel").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus moves a booking through the status table. Cancellation
// additionally requires a reason and the cancellation policy to pass, and
// computes the refund.
func (s *BookingService) UpdateStatus(actor Actor, id uint, target, cancellationReason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.mayAccess(&booking) {
		return nil, ErrAccessDenied
	}

	if !bookingTransitions[booking.BookingStatus][target] {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	updates := map[string]interface{}{"booking_status": target}

	if target == models.BookingCancelled {
		if !booking.CanBeCancelled(now) {
			return nil, validationf("booking cannot be cancelled at this time")
		}
		if cancellationReason == "" {
			return nil, validationf("cancellation reason is required")
		}
		updates["cancellation_reason"] = cancellationReason
		updates["cancelled_at"] = now
		updates["refund_amount"] = booking.CalculateRefund(now)
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("User").Preload("Hotel").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdatePayment moves the payment status through its table. Marking a
// Pending booking Paid confirms it in the same write; this coupling is a
// transition rule, not a side effect of any single handler.
func (s *BookingService) UpdatePayment(actor Actor, id uint, target, orderID, paymentID string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.mayAccess(&booking) {
		return nil, ErrAccessDenied
	}

	if !paymentTransitions[booking.PaymentStatus][target] {
		return nil, ErrInvalidStatus
	}

	updates := map[string]interface{}{"payment_status": target}
	if orderID != "" {
		updates["gateway_order_id"] = orderID
	}
	if paymentID != "" {
		updates["gateway_payment_id"] = paymentID
	}
	if target == models.PaymentPaid && booking.BookingStatus == models.BookingPending {
		updates["booking_status"] = models.BookingConfirmed
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, validationf("duplicate field value entered")
		}
		return nil, err
	}
	if err := s.DB.Preload("User").Preload("Hotel").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel is the dedicated cancellation path; same policy as a status update
// to Cancelled.
func (s *BookingService) Cancel(actor Actor, id uint, reason string) (*models.Booking, error) {
	return s.UpdateStatus(actor, id, models.BookingCancelled, reason)
}

// RevenueStats aggregates over paid bookings.
type RevenueStats struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`
	TotalRefunds        float64 `json:"totalRefunds"`
}

// MonthlyStat is one chronological bucket of booking volume and paid
// revenue.
type MonthlyStat struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// BookingStats is the administrator report.
type BookingStats struct {
	TotalBookings     int64         `json:"totalBookings"`
	ConfirmedBookings int64         `json:"confirmedBookings"`
	CancelledBookings int64         `json:"cancelledBookings"`
	CompletedBookings int64         `json:"completedBookings"`
	Revenue           RevenueStats  `json:"revenue"`
	MonthlyTrends     []MonthlyStat `json:"monthlyTrends"`
}

// Stats aggregates booking counts, paid revenue and monthly trends over an
// optional createdAt range. Admin only.
func (s *BookingService) Stats(actor Actor, startDate, endDate *time.Time) (*BookingStats, error) {
	if !actor.IsAdmin {
		return nil, ErrAccessDenied
	}

	ranged := func() *gorm.DB {
		q := s.DB.Model(&models.Booking{})
		if startDate != nil && endDate != nil {
			q = q.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
		}
		return q
	}

	stats := &BookingStats{}
	if err := ranged().Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := ranged().Where("booking_status = ?", models.BookingConfirmed).Count(&stats.ConfirmedBookings).Error; err != nil {
		return nil, err
	}
	if err := ranged().Where("booking_status = ?", models.BookingCancelled).Count(&stats.CancelledBookings).Error; err != nil {
		return nil, err
	}
	if err := ranged().Where("booking_status = ?", models.BookingCompleted).Count(&stats.CompletedBookings).Error; err != nil {
		return nil, err
	}

	if err := ranged().
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(final_amount), 0) AS total_revenue, COALESCE(AVG(final_amount), 0) AS average_booking_value, COALESCE(SUM(refund_amount), 0) AS total_refunds").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	trends, err := s.monthlyTrends(startDate, endDate)
	if err != nil {
		return nil, err
	}
	stats.MonthlyTrends = trends
	return stats, nil
}

// monthlyTrends buckets the filtered rows by calendar month in Go, keeping
// the query portable across the MySQL runtime and the SQLite test harness.
func (s *BookingService) monthlyTrends(startDate, endDate *time.Time) ([]MonthlyStat, error) {
	q := s.DB.Model(&models.Booking{}).
		Select("created_at", "payment_status", "final_amount")
	if startDate != nil && endDate != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
	}

	var rows []struct {
		CreatedAt     time.Time
		PaymentStatus string
		FinalAmount   float64
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	type bucket struct{ year, month int }
	acc := map[bucket]*MonthlyStat{}
	for _, r := range rows {
		b := bucket{r.CreatedAt.Year(), int(r.CreatedAt.Month())}
		stat, ok := acc[b]
		if !ok {
			stat = &MonthlyStat{Year: b.year, Month: b.month}
			acc[b] = stat
		}
		stat.Count++
		if r.PaymentStatus == models.PaymentPaid {
			stat.Revenue += r.FinalAmount
		}
	}

	trends := make([]MonthlyStat, 0, len(acc))
	for _, stat := range acc {
		trends = append(trends, *stat)
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year < trends[j].Year
		}
		return trends[i].Month < trends[j].Month
	})
	return trends, nil
}

// isDuplicateKeyError classifies MySQL duplicate-entry violations (1062) so
// they surface as validation failures rather than raw store errors.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
