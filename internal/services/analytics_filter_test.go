package services

import (
	"testing"
	"time"

	"hotel_admin_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAnalyticsFilter(t *testing.T) {
	tests := []struct {
		name   string
		params models.AnalyticsFilterParams
		check  func(t *testing.T, filter models.AnalyticsFilter)
	}{
		{
			name:   "empty params produce empty filter",
			params: models.AnalyticsFilterParams{},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.StartDate)
				assert.Nil(t, filter.EndDate)
				assert.Nil(t, filter.City)
				assert.Nil(t, filter.Status)
			},
		},
		{
			name: "all fields valid",
			params: models.AnalyticsFilterParams{
				StartDate: "2026-01-01",
				EndDate:   "2026-06-30",
				City:      models.CityMakkah,
				Status:    models.BookingStatusConfirmed,
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				require.NotNil(t, filter.StartDate)
				assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
				require.NotNil(t, filter.EndDate)
				assert.Equal(t, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), *filter.EndDate)
				require.NotNil(t, filter.City)
				assert.Equal(t, models.CityMakkah, *filter.City)
				require.NotNil(t, filter.Status)
				assert.Equal(t, models.BookingStatusConfirmed, *filter.Status)
			},
		},
		{
			name: "unparsable start date is dropped, valid fields kept",
			params: models.AnalyticsFilterParams{
				StartDate: "not-a-date",
				City:      models.CityMadinah,
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.StartDate)
				require.NotNil(t, filter.City)
				assert.Equal(t, models.CityMadinah, *filter.City)
			},
		},
		{
			name: "wrong date layout is dropped",
			params: models.AnalyticsFilterParams{
				StartDate: "01/02/2026",
				EndDate:   "2026-13-45",
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.StartDate)
				assert.Nil(t, filter.EndDate)
			},
		},
		{
			name: "unknown city is dropped",
			params: models.AnalyticsFilterParams{
				City:   "Jeddah",
				Status: models.BookingStatusPending,
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.City)
				require.NotNil(t, filter.Status)
				assert.Equal(t, models.BookingStatusPending, *filter.Status)
			},
		},
		{
			name: "unknown status is dropped",
			params: models.AnalyticsFilterParams{
				Status: "archived",
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.Status)
			},
		},
		{
			name: "city is case sensitive",
			params: models.AnalyticsFilterParams{
				City: "makkah",
			},
			check: func(t *testing.T, filter models.AnalyticsFilter) {
				assert.Nil(t, filter.City)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NormalizeAnalyticsFilter(tt.params))
		})
	}
}

func TestNormalizeAnalyticsFilter_SameOutputForSameInput(t *testing.T) {
	params := models.AnalyticsFilterParams{
		StartDate: "2026-03-15",
		City:      models.CityMakkah,
		Status:    "bogus",
	}
	first := NormalizeAnalyticsFilter(params)
	second := NormalizeAnalyticsFilter(params)
	assert.Equal(t, first, second)
}
