package analytics

import (
	"net/http"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/pkg/constants"
)

const (
	StrengthVeryStrong   = "Very Strong"
	StrengthStrong       = "Strong"
	StrengthModerate     = "Moderate"
	StrengthWeak         = "Weak"
	StrengthVeryWeak     = "Very Weak"
	StrengthNotAvailable = "Not Available"

	DirectionPositive = "Positive"
	DirectionNegative = "Negative"
	DirectionNone     = "No Linear Relationship"
)

// minSampleSize is the smallest number of districts a correlation can be
// computed over; below it the result reports null statistics.
const minSampleSize = 3

var ErrUnknownMetric = constants.NewCodedError(http.StatusBadRequest, "unknown correlation metric")

// Correlation computes Pearson r and a regression line between two named
// metrics over per-district totals. With fewer than three districts, or a
// constant series on either side, it returns an unavailable result instead of
// an error.
func Correlation(records []domain.SolarRecord, xMetric, yMetric string) (*domain.CorrelationResult, error) {
	if !validMetric(xMetric) || !validMetric(yMetric) {
		return nil, ErrUnknownMetric
	}

	totalsX := make(map[string]int)
	totalsY := make(map[string]int)
	for _, r := range records {
		totalsX[r.DistrictName] += metricValue(r, xMetric)
		totalsY[r.DistrictName] += metricValue(r, yMetric)
	}

	districts := sortedKeys(totalsX)
	xs := make([]float64, 0, len(districts))
	ys := make([]float64, 0, len(districts))
	points := make([]domain.Point, 0, len(districts))
	for _, d := range districts {
		x := float64(totalsX[d])
		y := float64(totalsY[d])
		xs = append(xs, x)
		ys = append(ys, y)
		points = append(points, domain.Point{X: x, Y: y, District: d})
	}

	result := &domain.CorrelationResult{
		XMetric:    xMetric,
		YMetric:    yMetric,
		SampleSize: len(districts),
		Strength:   StrengthNotAvailable,
		Direction:  StrengthNotAvailable,
		Points:     points,
	}

	if len(districts) < minSampleSize {
		return result, nil
	}

	r, ok := pearson(xs, ys)
	if !ok {
		// a constant series on either axis
		return result, nil
	}

	slope, intercept := linearFit(xs, ys)
	p := twoTailedPValue(r, len(districts))

	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		minX = min(minX, x)
		maxX = max(maxX, x)
	}

	result.Available = true
	result.R = ptr(round(r, 4))
	result.RSquared = ptr(round(r*r, 4))
	result.Slope = ptr(round(slope, 4))
	result.Intercept = ptr(round(intercept, 4))
	result.PValue = ptr(round(p, 6))
	result.IsSignificant = p < 0.05
	result.Strength = classifyStrength(r)
	result.Direction = classifyDirection(r)
	result.RegressionLine = []domain.Point{
		{X: minX, Y: intercept + slope*minX},
		{X: maxX, Y: intercept + slope*maxX},
	}

	return result, nil
}

func classifyStrength(r float64) string {
	abs := r
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 0.8:
		return StrengthVeryStrong
	case abs >= 0.6:
		return StrengthStrong
	case abs >= 0.4:
		return StrengthModerate
	case abs >= 0.2:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}

func classifyDirection(r float64) string {
	switch {
	case r > -0.05 && r < 0.05:
		return DirectionNone
	case r > 0:
		return DirectionPositive
	default:
		return DirectionNegative
	}
}

func validMetric(name string) bool {
	switch name {
	case "target", "booking", "installed", "rejected":
		return true
	}
	return false
}

func metricValue(r domain.SolarRecord, name string) int {
	switch name {
	case "target":
		return r.Target
	case "booking":
		return r.Booking
	case "installed":
		return r.Installed
	case "rejected":
		return r.Rejected
	}
	return 0
}
