package models

import "time"

// AnalyticsFilterParams holds the raw, loosely-typed query parameters of an
// analytics request before normalization. Malformed fields are dropped, not
// rejected.
type AnalyticsFilterParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	City      string `form:"city"`
	Status    string `form:"status"`
}

// AnalyticsFilter is a normalized analytics filter. A nil field means no
// constraint on that dimension. Date bounds are inclusive on the booking
// creation time.
type AnalyticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	City      *string
	Status    *string
}

// CityRevenue is the revenue of one city under a filter.
type CityRevenue struct {
	City                string  `json:"city"`
	Revenue             float64 `json:"revenue"`
	BookingCount        int     `json:"booking_count"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

// PeriodRevenue is the revenue of one calendar month (label YYYY-MM).
type PeriodRevenue struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// DailyRevenue is one day of the trailing revenue trend (label YYYY-MM-DD).
type DailyRevenue struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	BookingCount int     `json:"booking_count"`
}

// RevenueReport aggregates booking revenue under a filter.
type RevenueReport struct {
	TotalRevenue float64         `json:"total_revenue"`
	ByCity       []CityRevenue   `json:"by_city"`
	ByMonth      []PeriodRevenue `json:"by_month"`
	Trend        []DailyRevenue  `json:"trend"`
}

// ProfitSlice carries the derived profit figures of one slice (a city or a
// calendar month).
type ProfitSlice struct {
	Key             string  `json:"key"`
	Revenue         float64 `json:"revenue"`
	HotelCost       float64 `json:"hotel_cost"`
	OperationalCost float64 `json:"operational_cost"`
	GrossProfit     float64 `json:"gross_profit"`
	NetProfit       float64 `json:"net_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
}

// CostCategoryBreakdown is one category's share of the total cost. Hotel room
// costs appear as a synthetic "Hotel Costs" category next to the operational
// cost categories.
type CostCategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ProfitReport aggregates profit and cost figures under a filter.
type ProfitReport struct {
	TotalRevenue         float64                 `json:"total_revenue"`
	TotalHotelCost       float64                 `json:"total_hotel_cost"`
	TotalOperationalCost float64                 `json:"total_operational_cost"`
	GrossProfit          float64                 `json:"gross_profit"`
	NetProfit            float64                 `json:"net_profit"`
	ProfitMargin         float64                 `json:"profit_margin"`
	ByMonth              []ProfitSlice           `json:"by_month"`
	ByCity               []ProfitSlice           `json:"by_city"`
	CostBreakdown        []CostCategoryBreakdown `json:"cost_breakdown"`
}

// AnalyticsSummary restates the headline numbers of a combined report.
// TotalBookings is derived by summing the per-city booking counts of the
// revenue breakdown so it always agrees with the detailed view.
type AnalyticsSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	GrossProfit   float64 `json:"gross_profit"`
	NetProfit     float64 `json:"net_profit"`
	ProfitMargin  float64 `json:"profit_margin"`
	TotalBookings int     `json:"total_bookings"`
}

// AnalyticsData is the composed dashboard payload.
type AnalyticsData struct {
	Revenue *RevenueReport   `json:"revenue"`
	Profit  *ProfitReport    `json:"profit"`
	Summary AnalyticsSummary `json:"summary"`
}
