package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"hotel_admin_backend/internal/models"
)

// OperationalCostRepository defines the interface for operational-cost records.
// Costs are append-only child records of a booking; corrections are made by
// deleting and re-adding an entry.
type OperationalCostRepository interface {
	CreateOperationalCost(executor SQLExecutor, cost *models.OperationalCost) (int64, error)
	GetOperationalCostsByBookingID(bookingID int64) ([]models.OperationalCost, error)
	DeleteOperationalCost(executor SQLExecutor, id int64) error
}

type operationalCostRepository struct {
	db *sql.DB
}

// NewOperationalCostRepository creates a new instance of OperationalCostRepository.
func NewOperationalCostRepository(db *sql.DB) OperationalCostRepository {
	return &operationalCostRepository{db: db}
}

func (r *operationalCostRepository) CreateOperationalCost(executor SQLExecutor, cost *models.OperationalCost) (int64, error) {
	query := `INSERT INTO operational_costs (booking_id, cost_category, amount, description, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if cost.CreatedAt.IsZero() {
		cost.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		cost.BookingID, cost.CostCategory, cost.Amount, cost.Description, cost.CreatedAt,
	).Scan(&cost.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating operational cost: %v", ErrDatabaseError, err)
	}
	return cost.ID, nil
}

func (r *operationalCostRepository) GetOperationalCostsByBookingID(bookingID int64) ([]models.OperationalCost, error) {
	query := `SELECT id, booking_id, cost_category, amount, description, created_at
	          FROM operational_costs WHERE booking_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying operational costs for booking %d: %v", ErrDatabaseError, bookingID, err)
	}
	defer rows.Close()

	costs := []models.OperationalCost{}
	for rows.Next() {
		var cost models.OperationalCost
		if err := rows.Scan(&cost.ID, &cost.BookingID, &cost.CostCategory, &cost.Amount, &cost.Description, &cost.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning operational cost: %v", ErrDatabaseError, err)
		}
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating operational cost rows: %v", ErrDatabaseError, err)
	}
	return costs, nil
}

func (r *operationalCostRepository) DeleteOperationalCost(executor SQLExecutor, id int64) error {
	query := `DELETE FROM operational_costs WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting operational cost ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
