package models

import "time"

// Booking statuses used across the API.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses carried on a booking.
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// The two cities the business operates in.
const (
	CityMakkah  = "Makkah"
	CityMadinah = "Madinah"
)

// IsValidBookingStatus checks if the provided status is a known booking status.
func IsValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus checks if the provided status is a known payment status.
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// IsValidCity checks if the provided city is one of the two known cities.
func IsValidCity(city string) bool {
	return city == CityMakkah || city == CityMadinah
}

// Booking represents a guest's hotel reservation.
type Booking struct {
	ID            int64     `json:"id" db:"id"`
	GuestID       *int64    `json:"guest_id,omitempty" db:"guest_id"`
	City          string    `json:"city" db:"city"`
	Status        string    `json:"status" db:"status"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	TotalAmount   float64   `json:"total_amount" db:"total_amount"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Guest            *Guest            `json:"guest,omitempty"`            // Joined guest details
	Items            []BookingItem     `json:"items,omitempty"`            // Line items of the booking
	OperationalCosts []OperationalCost `json:"operational_costs,omitempty"` // Extra costs tied to the booking
}

// BookingItem is a line item of a booking: a number of rooms of one type at a
// per-stay sale price and a per-stay hotel cost price.
type BookingItem struct {
	ID             int64   `json:"id" db:"id"`
	BookingID      int64   `json:"booking_id" db:"booking_id"`
	RoomType       string  `json:"room_type" db:"room_type"`
	RoomCount      int     `json:"room_count" db:"room_count"`
	UnitPrice      float64 `json:"unit_price" db:"unit_price"`
	HotelCostPrice float64 `json:"hotel_cost_price" db:"hotel_cost_price"`
}

// OperationalCost is an expense tied to a booking outside the hotel room cost,
// e.g. transportation or visa fees.
type OperationalCost struct {
	ID           int64     `json:"id" db:"id"`
	BookingID    int64     `json:"booking_id" db:"booking_id"`
	CostCategory string    `json:"cost_category" db:"cost_category"`
	Amount       float64   `json:"amount" db:"amount"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// BookingFilters holds the optional filters for listing bookings.
type BookingFilters struct {
	GuestID  *int64
	City     *string
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
