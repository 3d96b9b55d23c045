package analytics

import "github.com/agrisolar/portal/internal/domain"

// Summarize computes the descriptor set for one derived rate series. Every
// field may come back nil on degenerate input; callers render nil as
// "not available".
func Summarize(metric string, values []float64) domain.SummaryStats {
	stats := domain.SummaryStats{
		Metric:   metric,
		Count:    len(values),
		Mean:     Mean(values),
		Median:   Median(values),
		Mode:     Mode(values),
		StdDev:   StdDev(values),
		CV:       CoefficientOfVariation(values),
		Skewness: Skewness(values),
	}

	for _, p := range []*float64{stats.Mean, stats.Median, stats.Mode, stats.StdDev, stats.CV, stats.Skewness} {
		if p != nil {
			*p = round(*p, 4)
		}
	}

	return stats
}
