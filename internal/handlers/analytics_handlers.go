package handlers

import (
	"net/http"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/services"
	"hotel_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler holds the analytics service.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// parseAnalyticsFilter normalizes the analytics query parameters. Malformed
// values are dropped rather than rejected, so the report always renders.
func parseAnalyticsFilter(c *gin.Context) models.AnalyticsFilter {
	return services.NormalizeAnalyticsFilter(models.AnalyticsFilterParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		City:      c.Query("city"),
		Status:    c.Query("status"),
	})
}

// GetRevenueReport returns total revenue, per-city and per-month breakdowns
// and the trailing daily trend for the filtered bookings.
func (h *AnalyticsHandler) GetRevenueReport(c *gin.Context) {
	report, err := h.analyticsService.GetRevenueData(parseAnalyticsFilter(c))
	if err != nil {
		utils.LogError(err, "GetRevenueReport: Error from analyticsService.GetRevenueData")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute revenue report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetProfitReport returns gross/net profit, margin and the cost breakdown for
// the filtered bookings.
func (h *AnalyticsHandler) GetProfitReport(c *gin.Context) {
	report, err := h.analyticsService.GetProfitData(parseAnalyticsFilter(c))
	if err != nil {
		utils.LogError(err, "GetProfitReport: Error from analyticsService.GetProfitData")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute profit report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetAnalyticsDashboard returns the combined revenue, profit and summary view.
func (h *AnalyticsHandler) GetAnalyticsDashboard(c *gin.Context) {
	data, err := h.analyticsService.GetAnalyticsData(parseAnalyticsFilter(c))
	if err != nil {
		utils.LogError(err, "GetAnalyticsDashboard: Error from analyticsService.GetAnalyticsData")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute analytics dashboard.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetAnalyticsSummary returns only the headline numbers.
func (h *AnalyticsHandler) GetAnalyticsSummary(c *gin.Context) {
	summary, err := h.analyticsService.GetAnalyticsSummary(parseAnalyticsFilter(c))
	if err != nil {
		utils.LogError(err, "GetAnalyticsSummary: Error from analyticsService.GetAnalyticsSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute analytics summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
