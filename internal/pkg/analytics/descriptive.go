// Package analytics holds the stateless computations over the normalized solar
// dataset. Every function is a pure function of its input rows; nothing here
// caches, and every report request recomputes from the currently persisted
// rows.
package analytics

import (
	"sort"

	"github.com/agrisolar/portal/internal/domain"
)

const (
	CategoryHigh     = "High"
	CategoryModerate = "Moderate"
	CategoryLow      = "Low"
)

// DescriptiveMetrics computes per-district averaged rates, the composite score
// and its classification, sorted by score descending.
//
// Per row: efficiency = installed/booking and rejection = rejected/booking
// (both 0 when booking is 0), target rate = installed/target (0 when target is
// 0). Score = 0.4*eff + 0.4*target + 0.2*(1-rejection).
func DescriptiveMetrics(records []domain.SolarRecord) []domain.DistrictPerformance {
	grouped := groupByDistrict(records)

	results := make([]domain.DistrictPerformance, 0, len(grouped))
	for _, district := range sortedKeys(grouped) {
		rows := grouped[district]

		var totalEff, totalTargetRate, totalRejection float64
		for _, r := range rows {
			if r.Booking > 0 {
				totalEff += float64(r.Installed) / float64(r.Booking)
				totalRejection += float64(r.Rejected) / float64(r.Booking)
			}
			if r.Target > 0 {
				totalTargetRate += float64(r.Installed) / float64(r.Target)
			}
		}

		count := float64(len(rows))
		avgEff := totalEff / count
		avgTargetRate := totalTargetRate / count
		avgRejection := totalRejection / count

		score := 0.4*avgEff + 0.4*avgTargetRate + 0.2*(1-avgRejection)

		results = append(results, domain.DistrictPerformance{
			District:      district,
			AvgEfficiency: round(avgEff, 3),
			AvgTargetRate: round(avgTargetRate, 3),
			AvgRejection:  round(avgRejection, 3),
			Score:         round(score, 3),
			Category:      classifyScore(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

func classifyScore(score float64) string {
	switch {
	case score >= 0.75:
		return CategoryHigh
	case score >= 0.55:
		return CategoryModerate
	default:
		return CategoryLow
	}
}

func groupByDistrict(records []domain.SolarRecord) map[string][]domain.SolarRecord {
	grouped := make(map[string][]domain.SolarRecord)
	for _, r := range records {
		grouped[r.DistrictName] = append(grouped[r.DistrictName], r)
	}
	return grouped
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
