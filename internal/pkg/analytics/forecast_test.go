package analytics

import (
	"testing"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistrictForecasts_LinearTrend(t *testing.T) {
	records := []domain.SolarRecord{
		{DistrictName: "Alpha", YearLabel: "2023-24", Installed: 100},
		{DistrictName: "Alpha", YearLabel: "2024-25", Installed: 150},
	}

	results := DistrictForecasts(records)
	require.Len(t, results, 1)

	// slope=50, intercept=50 -> next = 50 + 50*3 = 200
	assert.Equal(t, "Alpha", results[0].District)
	assert.Equal(t, "2024-25", results[0].LatestYear)
	assert.Equal(t, 200, results[0].PredictedNextYearInstalled)
	assert.Equal(t, 33.33, results[0].GrowthRate)
	assert.Equal(t, RiskStable, results[0].RiskLevel)
}

func TestDistrictForecasts_ExcludesSparseDistricts(t *testing.T) {
	records := []domain.SolarRecord{
		{DistrictName: "Single", YearLabel: "2024-25", Installed: 100},
		{DistrictName: "Zeroes", YearLabel: "2023-24", Installed: 0},
		{DistrictName: "Zeroes", YearLabel: "2024-25", Installed: 80},
	}

	// Single has one row; Zeroes has only one row with installed>0.
	assert.Empty(t, DistrictForecasts(records))
}

func TestDistrictForecasts_RiskLevels(t *testing.T) {
	records := []domain.SolarRecord{
		{DistrictName: "Shrinking", YearLabel: "2023-24", Installed: 200},
		{DistrictName: "Shrinking", YearLabel: "2024-25", Installed: 100},
		{DistrictName: "Booming", YearLabel: "2023-24", Installed: 100},
		{DistrictName: "Booming", YearLabel: "2024-25", Installed: 300},
	}

	results := DistrictForecasts(records)
	require.Len(t, results, 2)

	byDistrict := map[string]domain.DistrictForecast{}
	for _, r := range results {
		byDistrict[r.District] = r
	}

	assert.Equal(t, RiskHigh, byDistrict["Shrinking"].RiskLevel)
	assert.Equal(t, RiskHighGrowth, byDistrict["Booming"].RiskLevel)
}

func TestDistrictForecasts_NegativePredictionFloorsAtZero(t *testing.T) {
	records := []domain.SolarRecord{
		{DistrictName: "Falling", YearLabel: "2022-23", Installed: 100},
		{DistrictName: "Falling", YearLabel: "2023-24", Installed: 10},
		{DistrictName: "Falling", YearLabel: "2024-25", Installed: 5},
	}

	results := DistrictForecasts(records)
	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, results[0].PredictedNextYearInstalled, 0)
}

func TestDistrictForecasts_SortedByPredictionDesc(t *testing.T) {
	records := []domain.SolarRecord{
		{DistrictName: "Small", YearLabel: "2023-24", Installed: 10},
		{DistrictName: "Small", YearLabel: "2024-25", Installed: 20},
		{DistrictName: "Big", YearLabel: "2023-24", Installed: 100},
		{DistrictName: "Big", YearLabel: "2024-25", Installed: 140},
	}

	results := DistrictForecasts(records)
	require.Len(t, results, 2)
	assert.Equal(t, "Big", results[0].District)
	assert.Equal(t, "Small", results[1].District)
}
