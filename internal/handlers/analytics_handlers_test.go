package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyticsService records the filter it was called with and returns
// canned reports.
type stubAnalyticsService struct {
	lastFilter models.AnalyticsFilter
	revenue    *models.RevenueReport
	profit     *models.ProfitReport
	data       *models.AnalyticsData
	err        error
}

func (s *stubAnalyticsService) GetRevenueData(filter models.AnalyticsFilter) (*models.RevenueReport, error) {
	s.lastFilter = filter
	return s.revenue, s.err
}

func (s *stubAnalyticsService) GetProfitData(filter models.AnalyticsFilter) (*models.ProfitReport, error) {
	s.lastFilter = filter
	return s.profit, s.err
}

func (s *stubAnalyticsService) GetAnalyticsData(filter models.AnalyticsFilter) (*models.AnalyticsData, error) {
	s.lastFilter = filter
	return s.data, s.err
}

func (s *stubAnalyticsService) GetAnalyticsSummary(filter models.AnalyticsFilter) (*models.AnalyticsSummary, error) {
	s.lastFilter = filter
	if s.data == nil {
		return nil, s.err
	}
	return &s.data.Summary, s.err
}

func newAnalyticsTestRouter(svc *stubAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewAnalyticsHandler(svc)
	engine.GET("/analytics/revenue", handler.GetRevenueReport)
	engine.GET("/analytics/profit", handler.GetProfitReport)
	engine.GET("/analytics/dashboard", handler.GetAnalyticsDashboard)
	engine.GET("/analytics/summary", handler.GetAnalyticsSummary)
	return engine
}

func TestGetRevenueReport_NormalizesQueryParams(t *testing.T) {
	svc := &stubAnalyticsService{
		revenue: &models.RevenueReport{
			TotalRevenue: 21000,
			ByCity:       []models.CityRevenue{{City: models.CityMakkah, Revenue: 21000, BookingCount: 7, AverageBookingValue: 3000}},
			ByMonth:      []models.PeriodRevenue{},
			Trend:        []models.DailyRevenue{},
		},
	}
	engine := newAnalyticsTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue?start_date=2026-01-01&city=Makkah&status=confirmed", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.lastFilter.StartDate)
	assert.Equal(t, "2026-01-01", svc.lastFilter.StartDate.Format("2006-01-02"))
	require.NotNil(t, svc.lastFilter.City)
	assert.Equal(t, models.CityMakkah, *svc.lastFilter.City)
	require.NotNil(t, svc.lastFilter.Status)
	assert.Equal(t, models.BookingStatusConfirmed, *svc.lastFilter.Status)

	var body models.RevenueReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 21000.0, body.TotalRevenue)
	require.Len(t, body.ByCity, 1)
	assert.Equal(t, models.CityMakkah, body.ByCity[0].City)
}

func TestGetRevenueReport_MalformedParamsAreDropped(t *testing.T) {
	svc := &stubAnalyticsService{
		revenue: &models.RevenueReport{ByCity: []models.CityRevenue{}, ByMonth: []models.PeriodRevenue{}, Trend: []models.DailyRevenue{}},
	}
	engine := newAnalyticsTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/revenue?start_date=garbage&city=Jeddah&status=archived", nil)
	engine.ServeHTTP(w, req)

	// The report still renders; the bad filters behave as if never sent.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFilter.StartDate)
	assert.Nil(t, svc.lastFilter.City)
	assert.Nil(t, svc.lastFilter.Status)
}

func TestGetProfitReport_ServiceErrorReturns500(t *testing.T) {
	svc := &stubAnalyticsService{err: repositories.ErrDatabaseError}
	engine := newAnalyticsTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/profit", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errPayload, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	// Internal details stay out of the response body.
	assert.NotContains(t, errPayload["details"], "database")
}

func TestGetAnalyticsDashboard_ReturnsCombinedPayload(t *testing.T) {
	svc := &stubAnalyticsService{
		data: &models.AnalyticsData{
			Revenue: &models.RevenueReport{ByCity: []models.CityRevenue{}, ByMonth: []models.PeriodRevenue{}, Trend: []models.DailyRevenue{}},
			Profit:  &models.ProfitReport{ByMonth: []models.ProfitSlice{}, ByCity: []models.ProfitSlice{}, CostBreakdown: []models.CostCategoryBreakdown{}},
			Summary: models.AnalyticsSummary{TotalRevenue: 14000, GrossProfit: 5500, NetProfit: 4500, ProfitMargin: 32.1, TotalBookings: 6},
		},
	}
	engine := newAnalyticsTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body models.AnalyticsData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Revenue)
	require.NotNil(t, body.Profit)
	assert.Equal(t, 6, body.Summary.TotalBookings)
	assert.Equal(t, 32.1, body.Summary.ProfitMargin)
}

func TestGetAnalyticsSummary_ReturnsHeadlineNumbers(t *testing.T) {
	svc := &stubAnalyticsService{
		data: &models.AnalyticsData{
			Summary: models.AnalyticsSummary{TotalRevenue: 2000, GrossProfit: 800, NetProfit: 800, ProfitMargin: 40, TotalBookings: 1},
		},
	}
	engine := newAnalyticsTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/summary", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body models.AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2000.0, body.TotalRevenue)
	assert.Equal(t, 1, body.TotalBookings)
}
