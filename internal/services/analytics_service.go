package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	// AnalyticsDateLayout is the expected format of filter date parameters.
	AnalyticsDateLayout = "2006-01-02"

	// HotelCostsCategory is the synthetic cost-breakdown category representing
	// hotel room cost, reported separately from the operational categories.
	HotelCostsCategory = "Hotel Costs"

	// revenueTrendDays is the length of the trailing daily revenue trend.
	revenueTrendDays = 30
)

// NormalizeAnalyticsFilter validates and canonicalizes raw analytics query
// parameters into a typed filter. A malformed field is dropped rather than
// failing the whole request: an unparsable date, an unknown city or an unknown
// status all behave as if the field was never sent.
func NormalizeAnalyticsFilter(params models.AnalyticsFilterParams) models.AnalyticsFilter {
	var filter models.AnalyticsFilter

	if startDate, err := time.Parse(AnalyticsDateLayout, params.StartDate); err == nil {
		filter.StartDate = &startDate
	}
	if endDate, err := time.Parse(AnalyticsDateLayout, params.EndDate); err == nil {
		filter.EndDate = &endDate
	}
	if models.IsValidCity(params.City) {
		city := params.City
		filter.City = &city
	}
	if models.IsValidBookingStatus(params.Status) {
		status := params.Status
		filter.Status = &status
	}
	return filter
}

// AnalyticsService computes the financial reports of the admin dashboard. All
// operations are read-only; errors from the data source are propagated, never
// turned into partial results.
type AnalyticsService interface {
	GetRevenueData(filter models.AnalyticsFilter) (*models.RevenueReport, error)
	GetProfitData(filter models.AnalyticsFilter) (*models.ProfitReport, error)
	GetAnalyticsData(filter models.AnalyticsFilter) (*models.AnalyticsData, error)
	GetAnalyticsSummary(filter models.AnalyticsFilter) (*models.AnalyticsSummary, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(ar repositories.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: ar}
}

// roundPercent rounds a percentage to one decimal place.
func roundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}

// marginPercent derives a profit margin, guarded against zero revenue.
func marginPercent(netProfit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return roundPercent(netProfit / revenue * 100)
}

// GetRevenueData aggregates total revenue, revenue by city, revenue by
// calendar month of the current year and the trailing daily trend for all
// bookings matching the filter. The total is the sum of the per-city slices,
// so the breakdown always adds up to it exactly.
func (s *analyticsService) GetRevenueData(filter models.AnalyticsFilter) (*models.RevenueReport, error) {
	cityRows, err := s.analyticsRepo.BookingFinancialsByCity(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by city: %w", err)
	}

	report := &models.RevenueReport{
		ByCity:  []models.CityRevenue{},
		ByMonth: []models.PeriodRevenue{},
		Trend:   []models.DailyRevenue{},
	}

	for _, row := range cityRows {
		average := 0.0
		if row.BookingCount > 0 {
			average = row.Revenue / float64(row.BookingCount)
		}
		report.ByCity = append(report.ByCity, models.CityRevenue{
			City:                row.Key,
			Revenue:             row.Revenue,
			BookingCount:        row.BookingCount,
			AverageBookingValue: average,
		})
		report.TotalRevenue += row.Revenue
	}
	// Highest-revenue city first, for "top performer" presentation.
	sort.SliceStable(report.ByCity, func(i, j int) bool {
		return report.ByCity[i].Revenue > report.ByCity[j].Revenue
	})

	monthRows, err := s.analyticsRepo.BookingFinancialsByMonth(filter, time.Now().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by month: %w", err)
	}
	for _, row := range monthRows {
		report.ByMonth = append(report.ByMonth, models.PeriodRevenue{Period: row.Key, Revenue: row.Revenue})
	}
	// YYYY-MM labels sort lexicographically in chronological order.
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Period < report.ByMonth[j].Period
	})

	from, to := trendWindow(time.Now())
	dayRows, err := s.analyticsRepo.BookingFinancialsByDay(filter, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue trend: %w", err)
	}
	for _, row := range dayRows {
		report.Trend = append(report.Trend, models.DailyRevenue{
			Date:         row.Key,
			Revenue:      row.Revenue,
			BookingCount: row.BookingCount,
		})
	}
	sort.Slice(report.Trend, func(i, j int) bool {
		return report.Trend[i].Date < report.Trend[j].Date
	})

	return report, nil
}

// trendWindow returns the [from, to) bounds of the trailing trend: the last
// revenueTrendDays whole days including today.
func trendWindow(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(revenueTrendDays - 1)), today.AddDate(0, 0, 1)
}

// mergeProfitSlices joins booking financials and operational costs on the
// dimension key. The cost lookup is built once and consulted per slice; a key
// present on one side only gets zero for the missing side instead of being
// dropped.
func mergeProfitSlices(financials []repositories.FinancialSliceRow, costs []repositories.CostSliceRow) []models.ProfitSlice {
	index := make(map[string]int, len(financials))
	slices := []models.ProfitSlice{}

	for _, row := range financials {
		index[row.Key] = len(slices)
		slices = append(slices, models.ProfitSlice{
			Key:       row.Key,
			Revenue:   row.Revenue,
			HotelCost: row.HotelCost,
		})
	}
	for _, cost := range costs {
		if i, ok := index[cost.Key]; ok {
			slices[i].OperationalCost += cost.Amount
		} else {
			index[cost.Key] = len(slices)
			slices = append(slices, models.ProfitSlice{Key: cost.Key, OperationalCost: cost.Amount})
		}
	}

	for i := range slices {
		slice := &slices[i]
		slice.GrossProfit = slice.Revenue - slice.HotelCost
		slice.NetProfit = slice.GrossProfit - slice.OperationalCost
		slice.ProfitMargin = marginPercent(slice.NetProfit, slice.Revenue)
	}
	return slices
}

// GetProfitData aggregates gross/net profit, margin and the cost breakdown for
// all bookings matching the filter. Revenue and hotel cost come from booking
// items (aggregated per booking first), operational costs from their own
// records; the two sources are merged per dimension value.
func (s *analyticsService) GetProfitData(filter models.AnalyticsFilter) (*models.ProfitReport, error) {
	year := time.Now().Year()

	cityFinancials, err := s.analyticsRepo.BookingFinancialsByCity(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking financials by city: %w", err)
	}
	cityCosts, err := s.analyticsRepo.OperationalCostsByCity(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate operational costs by city: %w", err)
	}
	monthFinancials, err := s.analyticsRepo.BookingFinancialsByMonth(filter, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking financials by month: %w", err)
	}
	monthCosts, err := s.analyticsRepo.OperationalCostsByMonth(filter, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate operational costs by month: %w", err)
	}
	categoryCosts, err := s.analyticsRepo.OperationalCostsByCategory(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate operational costs by category: %w", err)
	}

	report := &models.ProfitReport{
		ByMonth:       []models.ProfitSlice{},
		ByCity:        []models.ProfitSlice{},
		CostBreakdown: []models.CostCategoryBreakdown{},
	}

	// Totals are sums of the per-city slices (cities partition the filtered
	// booking set) and of the per-category cost slices, so every breakdown adds
	// up to its total exactly.
	for _, row := range cityFinancials {
		report.TotalRevenue += row.Revenue
		report.TotalHotelCost += row.HotelCost
	}
	for _, row := range categoryCosts {
		report.TotalOperationalCost += row.Amount
	}
	report.GrossProfit = report.TotalRevenue - report.TotalHotelCost
	report.NetProfit = report.GrossProfit - report.TotalOperationalCost
	report.ProfitMargin = marginPercent(report.NetProfit, report.TotalRevenue)

	report.ByCity = mergeProfitSlices(cityFinancials, cityCosts)
	sort.SliceStable(report.ByCity, func(i, j int) bool {
		return report.ByCity[i].Revenue > report.ByCity[j].Revenue
	})

	report.ByMonth = mergeProfitSlices(monthFinancials, monthCosts)
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Key < report.ByMonth[j].Key
	})

	totalCost := report.TotalHotelCost + report.TotalOperationalCost
	if report.TotalHotelCost != 0 {
		report.CostBreakdown = append(report.CostBreakdown, models.CostCategoryBreakdown{
			Category: HotelCostsCategory,
			Amount:   report.TotalHotelCost,
		})
	}
	for _, row := range categoryCosts {
		report.CostBreakdown = append(report.CostBreakdown, models.CostCategoryBreakdown{
			Category: row.Key,
			Amount:   row.Amount,
		})
	}
	for i := range report.CostBreakdown {
		if totalCost > 0 {
			report.CostBreakdown[i].Percentage = roundPercent(report.CostBreakdown[i].Amount / totalCost * 100)
		}
	}
	sort.SliceStable(report.CostBreakdown, func(i, j int) bool {
		return report.CostBreakdown[i].Amount > report.CostBreakdown[j].Amount
	})

	return report, nil
}

// GetAnalyticsData runs the revenue and profit aggregations concurrently
// against the same filter and composes the dashboard payload. If either
// aggregation fails the whole call fails; there is no partial summary and no
// retry.
func (s *analyticsService) GetAnalyticsData(filter models.AnalyticsFilter) (*models.AnalyticsData, error) {
	var (
		g       errgroup.Group
		revenue *models.RevenueReport
		profit  *models.ProfitReport
	)

	g.Go(func() error {
		var err error
		revenue, err = s.GetRevenueData(filter)
		return err
	})
	g.Go(func() error {
		var err error
		profit, err = s.GetProfitData(filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The booking count is derived from the revenue breakdown rather than
	// recomputed, so the summary can never disagree with the detailed view.
	totalBookings := 0
	for _, city := range revenue.ByCity {
		totalBookings += city.BookingCount
	}

	return &models.AnalyticsData{
		Revenue: revenue,
		Profit:  profit,
		Summary: models.AnalyticsSummary{
			TotalRevenue:  profit.TotalRevenue,
			GrossProfit:   profit.GrossProfit,
			NetProfit:     profit.NetProfit,
			ProfitMargin:  profit.ProfitMargin,
			TotalBookings: totalBookings,
		},
	}, nil
}

// GetAnalyticsSummary returns only the headline numbers of the combined report.
func (s *analyticsService) GetAnalyticsSummary(filter models.AnalyticsFilter) (*models.AnalyticsSummary, error) {
	data, err := s.GetAnalyticsData(filter)
	if err != nil {
		return nil, err
	}
	return &data.Summary, nil
}
