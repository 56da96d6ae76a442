package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_admin_backend/internal/models"
)

// GuestRepository defines the interface for guest-related database operations.
type GuestRepository interface {
	CreateGuest(executor SQLExecutor, guest *models.Guest) (int64, error)
	GetGuestByID(id int64) (*models.Guest, error)
	GetGuests(page, pageSize int, searchTerm *string) ([]models.Guest, int, error) // guests, total count, error
	UpdateGuest(executor SQLExecutor, guest *models.Guest) error
	DeleteGuest(executor SQLExecutor, id int64) error
}

type guestRepository struct {
	db *sql.DB
}

// NewGuestRepository creates a new instance of GuestRepository.
func NewGuestRepository(db *sql.DB) GuestRepository {
	return &guestRepository{db: db}
}

const selectGuestFields = `id, full_name, phone_number, email, nationality, passport_number, notes, created_at, updated_at`

func scanGuest(row scanner, guest *models.Guest, extra ...interface{}) error {
	dest := []interface{}{
		&guest.ID, &guest.FullName, &guest.PhoneNumber, &guest.Email,
		&guest.Nationality, &guest.PassportNumber, &guest.Notes,
		&guest.CreatedAt, &guest.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateGuest inserts a new guest into the database.
func (r *guestRepository) CreateGuest(executor SQLExecutor, guest *models.Guest) (int64, error) {
	query := `INSERT INTO guests (full_name, phone_number, email, nationality, passport_number, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if guest.CreatedAt.IsZero() {
		guest.CreatedAt = currentTime
	}
	guest.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		guest.FullName, guest.PhoneNumber, guest.Email, guest.Nationality,
		guest.PassportNumber, guest.Notes, guest.CreatedAt, guest.UpdatedAt,
	).Scan(&guest.ID)

	if err != nil {
		return 0, MapPQError(err, "creating guest")
	}
	return guest.ID, nil
}

// GetGuestByID retrieves a guest by their ID.
func (r *guestRepository) GetGuestByID(id int64) (*models.Guest, error) {
	guest := &models.Guest{}
	query := `SELECT ` + selectGuestFields + ` FROM guests WHERE id = $1`

	err := scanGuest(r.db.QueryRow(query, id), guest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting guest by ID %d: %v", ErrDatabaseError, id, err)
	}
	return guest, nil
}

// GetGuests retrieves guests with pagination and an optional search term over
// name, phone and passport number.
func (r *guestRepository) GetGuests(page, pageSize int, searchTerm *string) ([]models.Guest, int, error) {
	guests := []models.Guest{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + selectGuestFields + `, COUNT(*) OVER() as total_count FROM guests`)

	var args []interface{}
	argCounter := 1

	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" WHERE full_name ILIKE $%d OR phone_number ILIKE $%d OR passport_number ILIKE $%d",
			argCounter, argCounter, argCounter))
		args = append(args, "%"+*searchTerm+"%")
		argCounter++
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying guests: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var guest models.Guest
		if err := scanGuest(rows, &guest, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning guest row: %v", ErrDatabaseError, err)
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating guest rows: %v", ErrDatabaseError, err)
	}
	return guests, totalCount, nil
}

// UpdateGuest updates an existing guest.
func (r *guestRepository) UpdateGuest(executor SQLExecutor, guest *models.Guest) error {
	query := `UPDATE guests SET
	            full_name = $1, phone_number = $2, email = $3, nationality = $4,
	            passport_number = $5, notes = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING updated_at`
	guest.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		guest.FullName, guest.PhoneNumber, guest.Email, guest.Nationality,
		guest.PassportNumber, guest.Notes, guest.UpdatedAt, guest.ID,
	).Scan(&guest.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return MapPQError(err, fmt.Sprintf("updating guest ID %d", guest.ID))
	}
	return nil
}

// DeleteGuest deletes a guest by ID.
func (r *guestRepository) DeleteGuest(executor SQLExecutor, id int64) error {
	query := `DELETE FROM guests WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting guest ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
