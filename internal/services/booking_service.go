package services

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"
)

// --- Custom Service Errors for Booking ---
var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingValidation       = errors.New("booking data validation error")
	ErrGuestForBookingNotFound = errors.New("guest specified for booking not found")
	ErrBookingStatusUpdate     = errors.New("invalid status transition or error updating booking status")
)

// --- Booking DTOs ---

type BookingItemRequest struct {
	RoomType       string  `json:"room_type" binding:"required"`
	RoomCount      int     `json:"room_count" binding:"required"`
	UnitPrice      float64 `json:"unit_price"`
	HotelCostPrice float64 `json:"hotel_cost_price"`
}

type CreateBookingRequest struct {
	GuestID       *int64               `json:"guest_id"`
	City          string               `json:"city" binding:"required"`
	Status        *string              `json:"status"`
	PaymentStatus *string              `json:"payment_status"`
	Notes         *string              `json:"notes"`
	Items         []BookingItemRequest `json:"items" binding:"required"`
}

type UpdateBookingRequest struct {
	GuestID       *int64  `json:"guest_id"`
	City          *string `json:"city"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
}

// --- BookingService Interface ---
type BookingService interface {
	CreateBooking(req CreateBookingRequest) (*models.Booking, error)
	GetBookingByID(bookingID int64) (*models.Booking, error)
	GetBookings(filters models.BookingFilters) ([]models.Booking, int, error)
	UpdateBooking(bookingID int64, req UpdateBookingRequest) (*models.Booking, error)
	ConfirmBooking(bookingID int64) (*models.Booking, error)
	CancelBooking(bookingID int64) (*models.Booking, error)
	DeleteBooking(bookingID int64) error
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	guestRepo   repositories.GuestRepository
	costRepo    repositories.OperationalCostRepository
	db          *sql.DB
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(
	br repositories.BookingRepository,
	gr repositories.GuestRepository,
	ocr repositories.OperationalCostRepository,
	db *sql.DB,
) BookingService {
	return &bookingService{
		bookingRepo: br,
		guestRepo:   gr,
		costRepo:    ocr,
		db:          db,
	}
}

// validateItems checks the booking line items and returns the derived total
// sale amount (sum of unit price times room count).
func validateItems(items []BookingItemRequest) (float64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: a booking needs at least one item", ErrBookingValidation)
	}
	total := 0.0
	for i, item := range items {
		if item.RoomCount <= 0 {
			return 0, fmt.Errorf("%w: item %d: room count must be positive", ErrBookingValidation, i)
		}
		if item.UnitPrice < 0 || item.HotelCostPrice < 0 {
			return 0, fmt.Errorf("%w: item %d: prices cannot be negative", ErrBookingValidation, i)
		}
		total += item.UnitPrice * float64(item.RoomCount)
	}
	return total, nil
}

func (s *bookingService) CreateBooking(req CreateBookingRequest) (*models.Booking, error) {
	if !models.IsValidCity(req.City) {
		return nil, fmt.Errorf("%w: unknown city '%s'", ErrBookingValidation, req.City)
	}

	status := models.BookingStatusPending
	if req.Status != nil && *req.Status != "" {
		if !models.IsValidBookingStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status '%s'", ErrBookingValidation, *req.Status)
		}
		status = *req.Status
	}

	paymentStatus := models.PaymentStatusUnpaid
	if req.PaymentStatus != nil && *req.PaymentStatus != "" {
		if !models.IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, fmt.Errorf("%w: invalid payment status '%s'", ErrBookingValidation, *req.PaymentStatus)
		}
		paymentStatus = *req.PaymentStatus
	}

	totalAmount, err := validateItems(req.Items)
	if err != nil {
		return nil, err
	}

	if req.GuestID != nil {
		if _, err := s.guestRepo.GetGuestByID(*req.GuestID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrGuestForBookingNotFound, *req.GuestID)
			}
			return nil, fmt.Errorf("failed to validate guest for booking: %w", err)
		}
	}

	booking := &models.Booking{
		GuestID:       req.GuestID,
		City:          req.City,
		Status:        status,
		PaymentStatus: paymentStatus,
		TotalAmount:   totalAmount,
		Notes:         req.Notes,
	}

	// Booking and its items are written in one transaction.
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for booking: %w", err)
	}
	defer tx.Rollback()

	bookingID, err := s.bookingRepo.CreateBooking(tx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking in repository: %w", err)
	}
	for _, itemReq := range req.Items {
		item := &models.BookingItem{
			BookingID:      bookingID,
			RoomType:       itemReq.RoomType,
			RoomCount:      itemReq.RoomCount,
			UnitPrice:      itemReq.UnitPrice,
			HotelCostPrice: itemReq.HotelCostPrice,
		}
		if _, err := s.bookingRepo.CreateBookingItem(tx, item); err != nil {
			return nil, fmt.Errorf("failed to create booking item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return s.bookingRepo.GetBookingByID(bookingID)
}

func (s *bookingService) GetBookingByID(bookingID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}

	costs, err := s.costRepo.GetOperationalCostsByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load operational costs for booking: %w", err)
	}
	booking.OperationalCosts = costs
	return booking, nil
}

func (s *bookingService) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	bookings, totalCount, err := s.bookingRepo.GetBookings(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, totalCount, nil
}

func (s *bookingService) UpdateBooking(bookingID int64, req UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking for update: %w", err)
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: cannot update a cancelled booking", ErrBookingValidation)
	}

	if req.GuestID != nil {
		if _, err := s.guestRepo.GetGuestByID(*req.GuestID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrGuestForBookingNotFound, *req.GuestID)
			}
			return nil, fmt.Errorf("failed to validate guest for booking: %w", err)
		}
		booking.GuestID = req.GuestID
	}
	if req.City != nil {
		if !models.IsValidCity(*req.City) {
			return nil, fmt.Errorf("%w: unknown city '%s'", ErrBookingValidation, *req.City)
		}
		booking.City = *req.City
	}
	if req.Status != nil {
		if !models.IsValidBookingStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status '%s'", ErrBookingValidation, *req.Status)
		}
		booking.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if !models.IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, fmt.Errorf("%w: invalid payment status '%s'", ErrBookingValidation, *req.PaymentStatus)
		}
		booking.PaymentStatus = *req.PaymentStatus
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	if err := s.bookingRepo.UpdateBooking(s.db, booking); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking in repository: %w", err)
	}
	return s.GetBookingByID(bookingID)
}

func (s *bookingService) updateBookingStatus(bookingID int64, newStatus string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking to update status: %w", err)
	}

	if booking.Status == models.BookingStatusCancelled && newStatus != models.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: cannot change status of a cancelled booking", ErrBookingStatusUpdate)
	}

	booking.Status = newStatus
	if err := s.bookingRepo.UpdateBooking(s.db, booking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingStatusUpdate, err)
	}
	return s.GetBookingByID(bookingID)
}

func (s *bookingService) ConfirmBooking(bookingID int64) (*models.Booking, error) {
	return s.updateBookingStatus(bookingID, models.BookingStatusConfirmed)
}

func (s *bookingService) CancelBooking(bookingID int64) (*models.Booking, error) {
	return s.updateBookingStatus(bookingID, models.BookingStatusCancelled)
}

func (s *bookingService) DeleteBooking(bookingID int64) error {
	if _, err := s.bookingRepo.GetBookingByID(bookingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to find booking for deletion: %w", err)
	}
	if err := s.bookingRepo.DeleteBooking(s.db, bookingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
