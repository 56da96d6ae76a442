package repositories

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"hotel_admin_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsRepoWithMock(t *testing.T) (AnalyticsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnalyticsRepository(db), mock
}

func financialRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"slice_key", "revenue", "hotel_cost", "booking_count"})
}

func costRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"slice_key", "amount"})
}

func TestBookingFinancialsByCity_NoFilter(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN booking_items bi ON bi.booking_id = b.id")).
		WillReturnRows(financialRows().
			AddRow(models.CityMadinah, 4000.0, 2500.0, 2).
			AddRow(models.CityMakkah, 10000.0, 6000.0, 4))

	rows, err := repo.BookingFinancialsByCity(models.AnalyticsFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.CityMadinah, rows[0].Key)
	assert.Equal(t, 4000.0, rows[0].Revenue)
	assert.Equal(t, 2500.0, rows[0].HotelCost)
	assert.Equal(t, 2, rows[0].BookingCount)
	assert.Equal(t, models.CityMakkah, rows[1].Key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingFinancialsByCity_FilterConditionsAndArgs(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	city := models.CityMakkah
	status := models.BookingStatusConfirmed

	// The end date bound covers the whole end day.
	mock.ExpectQuery(`b\.created_at >= \$1 AND b\.created_at < \$2 AND b\.city = \$3 AND b\.status = \$4`).
		WithArgs(start, end.AddDate(0, 0, 1), city, status).
		WillReturnRows(financialRows().AddRow(city, 10000.0, 6000.0, 4))

	rows, err := repo.BookingFinancialsByCity(models.AnalyticsFilter{
		StartDate: &start,
		EndDate:   &end,
		City:      &city,
		Status:    &status,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, city, rows[0].Key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingFinancialsByMonth_YearWindowPrecedesFilterArgs(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	city := models.CityMadinah
	yearStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	mock.ExpectQuery(regexp.QuoteMeta("TO_CHAR(b.created_at, 'YYYY-MM')")).
		WithArgs(yearStart, yearEnd, city).
		WillReturnRows(financialRows().
			AddRow("2026-01", 3000.0, 1800.0, 2).
			AddRow("2026-02", 5000.0, 2900.0, 3))

	rows, err := repo.BookingFinancialsByMonth(models.AnalyticsFilter{City: &city}, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-01", rows[0].Key)
	assert.Equal(t, "2026-02", rows[1].Key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingFinancialsByDay_UsesGivenWindow(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	from := time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("TO_CHAR(b.created_at, 'YYYY-MM-DD')")).
		WithArgs(from, to).
		WillReturnRows(financialRows().AddRow("2026-08-01", 700.0, 450.0, 2))

	rows, err := repo.BookingFinancialsByDay(models.AnalyticsFilter{}, from, to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-01", rows[0].Key)
	assert.Equal(t, 2, rows[0].BookingCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationalCostsByCategory(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN bookings b ON oc.booking_id = b.id")).
		WillReturnRows(costRows().
			AddRow("Meals", 350.0).
			AddRow("Transport", 1200.0))

	rows, err := repo.OperationalCostsByCategory(models.AnalyticsFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Meals", rows[0].Key)
	assert.Equal(t, 350.0, rows[0].Amount)
	assert.Equal(t, "Transport", rows[1].Key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationalCostsByCity_AppliesStatusFilter(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	status := models.BookingStatusConfirmed

	mock.ExpectQuery(`b\.status = \$1`).
		WithArgs(status).
		WillReturnRows(costRows().AddRow(models.CityMakkah, 1000.0))

	rows, err := repo.OperationalCostsByCity(models.AnalyticsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1000.0, rows[0].Amount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingFinancialsByCity_QueryError(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	mock.ExpectQuery("FROM bookings b").WillReturnError(fmt.Errorf("connection reset"))

	rows, err := repo.BookingFinancialsByCity(models.AnalyticsFilter{})
	assert.Nil(t, rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseError))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationalCostsByMonth_QueryError(t *testing.T) {
	repo, mock := newAnalyticsRepoWithMock(t)

	mock.ExpectQuery("FROM operational_costs oc").WillReturnError(fmt.Errorf("connection reset"))

	rows, err := repo.OperationalCostsByMonth(models.AnalyticsFilter{}, 2026)
	assert.Nil(t, rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseError))

	assert.NoError(t, mock.ExpectationsWereMet())
}
