package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_admin_backend/internal/models"
)

// BookingRepository defines the interface for booking-related database operations.
type BookingRepository interface {
	CreateBooking(executor SQLExecutor, booking *models.Booking) (int64, error)
	CreateBookingItem(executor SQLExecutor, item *models.BookingItem) (int64, error)
	GetBookingByID(id int64) (*models.Booking, error)
	GetBookingItemsByBookingID(bookingID int64) ([]models.BookingItem, error)
	GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) // bookings, total count, error
	UpdateBooking(executor SQLExecutor, booking *models.Booking) error
	UpdateBookingStatus(executor SQLExecutor, bookingID int64, newStatus string, updatedAt time.Time) error
	DeleteBooking(executor SQLExecutor, id int64) error
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateBooking(executor SQLExecutor, booking *models.Booking) (int64, error) {
	query := `INSERT INTO bookings
	            (guest_id, city, status, payment_status, total_amount, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = currentTime
	}
	booking.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		booking.GuestID, booking.City, booking.Status, booking.PaymentStatus,
		booking.TotalAmount, booking.Notes, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating booking: %v", ErrDatabaseError, err)
	}
	return booking.ID, nil
}

func (r *bookingRepository) CreateBookingItem(executor SQLExecutor, item *models.BookingItem) (int64, error) {
	query := `INSERT INTO booking_items (booking_id, room_type, room_count, unit_price, hotel_cost_price)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := executor.QueryRow(query,
		item.BookingID, item.RoomType, item.RoomCount, item.UnitPrice, item.HotelCostPrice,
	).Scan(&item.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating booking item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *bookingRepository) GetBookingByID(id int64) (*models.Booking, error) {
	booking := &models.Booking{}
	var guestID sql.NullInt64
	var guestName, guestPhone sql.NullString

	query := `SELECT b.id, b.guest_id, b.city, b.status, b.payment_status, b.total_amount, b.notes,
	                 b.created_at, b.updated_at,
	                 g.full_name, g.phone_number
	          FROM bookings b
	          LEFT JOIN guests g ON b.guest_id = g.id
	          WHERE b.id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&booking.ID, &guestID, &booking.City, &booking.Status, &booking.PaymentStatus,
		&booking.TotalAmount, &booking.Notes, &booking.CreatedAt, &booking.UpdatedAt,
		&guestName, &guestPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting booking by ID %d: %v", ErrDatabaseError, id, err)
	}

	if guestID.Valid {
		booking.GuestID = &guestID.Int64
		guest := &models.Guest{ID: guestID.Int64, FullName: guestName.String}
		if guestPhone.Valid {
			guest.PhoneNumber = &guestPhone.String
		}
		booking.Guest = guest
	}

	items, err := r.GetBookingItemsByBookingID(id)
	if err != nil {
		return nil, err
	}
	booking.Items = items

	return booking, nil
}

func (r *bookingRepository) GetBookingItemsByBookingID(bookingID int64) ([]models.BookingItem, error) {
	query := `SELECT id, booking_id, room_type, room_count, unit_price, hotel_cost_price
	          FROM booking_items WHERE booking_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying booking items for booking %d: %v", ErrDatabaseError, bookingID, err)
	}
	defer rows.Close()

	items := []models.BookingItem{}
	for rows.Next() {
		var item models.BookingItem
		if err := rows.Scan(&item.ID, &item.BookingID, &item.RoomType, &item.RoomCount, &item.UnitPrice, &item.HotelCostPrice); err != nil {
			return nil, fmt.Errorf("%w: scanning booking item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating booking item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *bookingRepository) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	bookings := []models.Booking{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT b.id, b.guest_id, b.city, b.status, b.payment_status, b.total_amount, b.notes,
               b.created_at, b.updated_at,
               g.full_name, g.phone_number,
               COUNT(*) OVER() as total_count
        FROM bookings b
        LEFT JOIN guests g ON b.guest_id = g.id
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.GuestID != nil {
		conditions = append(conditions, fmt.Sprintf("b.guest_id = $%d", argCounter))
		args = append(args, *filters.GuestID)
		argCounter++
	}
	if filters.City != nil && *filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("b.city = $%d", argCounter))
		args = append(args, *filters.City)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("b.created_at >= $%d", argCounter))
		args = append(args, *filters.DateFrom)
		argCounter++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("b.created_at < $%d", argCounter))
		args = append(args, filters.DateTo.AddDate(0, 0, 1))
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY b.created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var booking models.Booking
		var guestID sql.NullInt64
		var guestName, guestPhone sql.NullString

		if err := rows.Scan(
			&booking.ID, &guestID, &booking.City, &booking.Status, &booking.PaymentStatus,
			&booking.TotalAmount, &booking.Notes, &booking.CreatedAt, &booking.UpdatedAt,
			&guestName, &guestPhone, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning booking row: %v", ErrDatabaseError, err)
		}

		if guestID.Valid {
			booking.GuestID = &guestID.Int64
			guest := &models.Guest{ID: guestID.Int64, FullName: guestName.String}
			if guestPhone.Valid {
				guest.PhoneNumber = &guestPhone.String
			}
			booking.Guest = guest
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, totalCount, nil
}

func (r *bookingRepository) UpdateBooking(executor SQLExecutor, booking *models.Booking) error {
	query := `UPDATE bookings SET
	            guest_id = $1, city = $2, status = $3, payment_status = $4,
	            total_amount = $5, notes = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING updated_at`
	booking.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		booking.GuestID, booking.City, booking.Status, booking.PaymentStatus,
		booking.TotalAmount, booking.Notes, booking.UpdatedAt, booking.ID,
	).Scan(&booking.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating booking ID %d: %v", ErrDatabaseError, booking.ID, err)
	}
	return nil
}

func (r *bookingRepository) UpdateBookingStatus(executor SQLExecutor, bookingID int64, newStatus string, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, newStatus, updatedAt, bookingID)
	if err != nil {
		return fmt.Errorf("%w: updating status of booking ID %d: %v", ErrDatabaseError, bookingID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) DeleteBooking(executor SQLExecutor, id int64) error {
	// Items and operational costs are removed by ON DELETE CASCADE.
	query := `DELETE FROM bookings WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting booking ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
