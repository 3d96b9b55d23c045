package analytics

import (
	"sort"

	"github.com/agrisolar/portal/internal/domain"
)

const (
	RiskStable     = "Stable"
	RiskHigh       = "High Risk"
	RiskHighGrowth = "High Growth"
)

// DistrictForecasts fits a linear trend over each district's installed counts
// and projects one period ahead. Districts with fewer than two periods of
// installed>0 data are excluded entirely. Sorted by prediction descending.
func DistrictForecasts(records []domain.SolarRecord) []domain.DistrictForecast {
	grouped := make(map[string][]domain.SolarRecord)
	for _, r := range records {
		if r.Installed > 0 {
			grouped[r.DistrictName] = append(grouped[r.DistrictName], r)
		}
	}

	results := make([]domain.DistrictForecast, 0, len(grouped))
	for _, district := range sortedKeys(grouped) {
		rows := grouped[district]
		if len(rows) < 2 {
			continue
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].YearLabel < rows[j].YearLabel
		})

		// Fit over index positions 1..N rather than the labels themselves, so
		// a skipped reporting year does not warp the slope.
		xs := make([]float64, len(rows))
		ys := make([]float64, len(rows))
		for i, r := range rows {
			xs[i] = float64(i + 1)
			ys[i] = float64(r.Installed)
		}

		slope, intercept := linearFit(xs, ys)

		predicted := int(intercept + slope*float64(len(rows)+1))
		if predicted < 0 {
			predicted = 0
		}

		last := rows[len(rows)-1]
		growth := 0.0
		if last.Installed > 0 {
			growth = slope / float64(last.Installed) * 100
		}

		risk := RiskStable
		if slope < 0 {
			risk = RiskHigh
		} else if slope > 50 {
			risk = RiskHighGrowth
		}

		results = append(results, domain.DistrictForecast{
			District:                   district,
			LatestYear:                 last.YearLabel,
			GrowthRate:                 round(growth, 2),
			PredictedNextYearInstalled: predicted,
			RiskLevel:                  risk,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PredictedNextYearInstalled > results[j].PredictedNextYearInstalled
	})

	return results
}
