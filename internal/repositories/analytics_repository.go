package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hotel_admin_backend/internal/models"
)

// FinancialSliceRow is one slice of booking revenue and hotel cost, keyed by a
// dimension value (city name, YYYY-MM period or YYYY-MM-DD day).
type FinancialSliceRow struct {
	Key          string
	Revenue      float64
	HotelCost    float64
	BookingCount int
}

// CostSliceRow is one slice of operational cost, keyed by a dimension value
// (city name, YYYY-MM period or cost category).
type CostSliceRow struct {
	Key    string
	Amount float64
}

// AnalyticsRepository is the engine's read-only view over the booking data.
// Booking revenue and hotel cost are always aggregated per booking first
// (inner GROUP BY on the booking id), so a booking with several items is never
// counted twice when re-aggregated by city or period. Operational costs are
// joined to their booking so the same filter applies and orphans can never
// enter a report.
type AnalyticsRepository interface {
	BookingFinancialsByCity(filter models.AnalyticsFilter) ([]FinancialSliceRow, error)
	BookingFinancialsByMonth(filter models.AnalyticsFilter, year int) ([]FinancialSliceRow, error)
	BookingFinancialsByDay(filter models.AnalyticsFilter, from, to time.Time) ([]FinancialSliceRow, error)
	OperationalCostsByCity(filter models.AnalyticsFilter) ([]CostSliceRow, error)
	OperationalCostsByMonth(filter models.AnalyticsFilter, year int) ([]CostSliceRow, error)
	OperationalCostsByCategory(filter models.AnalyticsFilter) ([]CostSliceRow, error)
}

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository.
func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// bookingFilterConditions renders the normalized filter as SQL conditions on
// the bookings table (alias "b") with numbered placeholders starting at argIdx.
// The end date bound is inclusive: the condition covers the whole end day.
func bookingFilterConditions(filter models.AnalyticsFilter, argIdx int) ([]string, []interface{}, int) {
	var conditions []string
	var args []interface{}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.created_at >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.created_at < $%d", argIdx))
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		argIdx++
	}
	if filter.City != nil {
		conditions = append(conditions, fmt.Sprintf("b.city = $%d", argIdx))
		args = append(args, *filter.City)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	return conditions, args, argIdx
}

// yearBounds returns the [start, end) window of a calendar year.
func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// queryBookingFinancials runs the two-level aggregation for a given dimension
// key expression and extra window conditions.
func (r *analyticsRepository) queryBookingFinancials(keyExpr string, filter models.AnalyticsFilter, extraConditions []string, extraArgs []interface{}, startIdx int) ([]FinancialSliceRow, error) {
	conditions, args, _ := bookingFilterConditions(filter, startIdx)
	conditions = append(conditions, extraConditions...)
	args = append(extraArgs, args...)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT t.slice_key,
		       COALESCE(SUM(t.revenue), 0) AS revenue,
		       COALESCE(SUM(t.hotel_cost), 0) AS hotel_cost,
		       COUNT(*) AS booking_count
		FROM (
			SELECT b.id, ` + keyExpr + ` AS slice_key,
			       COALESCE(SUM(bi.unit_price * bi.room_count), 0) AS revenue,
			       COALESCE(SUM(bi.hotel_cost_price * bi.room_count), 0) AS hotel_cost
			FROM bookings b
			LEFT JOIN booking_items bi ON bi.booking_id = b.id
	`)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(`
			GROUP BY b.id, slice_key
		) t
		GROUP BY t.slice_key
		ORDER BY t.slice_key ASC`)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying booking financials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []FinancialSliceRow{}
	for rows.Next() {
		var row FinancialSliceRow
		if err := rows.Scan(&row.Key, &row.Revenue, &row.HotelCost, &row.BookingCount); err != nil {
			return nil, fmt.Errorf("%w: scanning booking financials row: %v", ErrDatabaseError, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating booking financials rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *analyticsRepository) BookingFinancialsByCity(filter models.AnalyticsFilter) ([]FinancialSliceRow, error) {
	return r.queryBookingFinancials("b.city", filter, nil, nil, 1)
}

func (r *analyticsRepository) BookingFinancialsByMonth(filter models.AnalyticsFilter, year int) ([]FinancialSliceRow, error) {
	start, end := yearBounds(year)
	extra := []string{"b.created_at >= $1", "b.created_at < $2"}
	return r.queryBookingFinancials("TO_CHAR(b.created_at, 'YYYY-MM')", filter, extra, []interface{}{start, end}, 3)
}

func (r *analyticsRepository) BookingFinancialsByDay(filter models.AnalyticsFilter, from, to time.Time) ([]FinancialSliceRow, error) {
	extra := []string{"b.created_at >= $1", "b.created_at < $2"}
	return r.queryBookingFinancials("TO_CHAR(b.created_at, 'YYYY-MM-DD')", filter, extra, []interface{}{from, to}, 3)
}

// queryOperationalCosts aggregates operational cost amounts by a dimension key
// expression, applying the booking filter through a join.
func (r *analyticsRepository) queryOperationalCosts(keyExpr string, filter models.AnalyticsFilter, extraConditions []string, extraArgs []interface{}, startIdx int) ([]CostSliceRow, error) {
	conditions, args, _ := bookingFilterConditions(filter, startIdx)
	conditions = append(conditions, extraConditions...)
	args = append(extraArgs, args...)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + keyExpr + ` AS slice_key, COALESCE(SUM(oc.amount), 0) AS amount
		FROM operational_costs oc
		JOIN bookings b ON oc.booking_id = b.id
	`)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY slice_key ORDER BY slice_key ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying operational costs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []CostSliceRow{}
	for rows.Next() {
		var row CostSliceRow
		if err := rows.Scan(&row.Key, &row.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning operational cost row: %v", ErrDatabaseError, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating operational cost rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *analyticsRepository) OperationalCostsByCity(filter models.AnalyticsFilter) ([]CostSliceRow, error) {
	return r.queryOperationalCosts("b.city", filter, nil, nil, 1)
}

func (r *analyticsRepository) OperationalCostsByMonth(filter models.AnalyticsFilter, year int) ([]CostSliceRow, error) {
	start, end := yearBounds(year)
	extra := []string{"b.created_at >= $1", "b.created_at < $2"}
	return r.queryOperationalCosts("TO_CHAR(b.created_at, 'YYYY-MM')", filter, extra, []interface{}{start, end}, 3)
}

func (r *analyticsRepository) OperationalCostsByCategory(filter models.AnalyticsFilter) ([]CostSliceRow, error) {
	return r.queryOperationalCosts("oc.cost_category", filter, nil, nil, 1)
}
