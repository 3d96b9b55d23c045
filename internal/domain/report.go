package domain

// DistrictPerformance is one row of the descriptive report. Rates are averages
// across the district's reporting periods, rounded to 3 decimals.
type DistrictPerformance struct {
	District      string  `json:"district"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	AvgTargetRate float64 `json:"avg_target_rate"`
	AvgRejection  float64 `json:"avg_rejection"`
	Score         float64 `json:"score"`
	Category      string  `json:"category"`
}

// DistrictForecast is one row of the predictive report.
type DistrictForecast struct {
	District                   string    `json:"district"`
	LatestYear                 YearLabel `json:"latest_year"`
	GrowthRate                 float64   `json:"growth_rate"`
	PredictedNextYearInstalled int       `json:"predicted_next_year_installed"`
	RiskLevel                  string    `json:"risk_level"`
}

// Point is a plottable (x, y) pair; District is set for scatter points and
// empty for regression-line endpoints.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	District string  `json:"district,omitempty"`
}

// CorrelationResult carries the pairwise statistics between two metrics over
// per-district totals. Statistic pointers are nil when the sample is too
// degenerate to compute anything (n<3 or a constant series).
type CorrelationResult struct {
	XMetric    string `json:"x_metric"`
	YMetric    string `json:"y_metric"`
	SampleSize int    `json:"sample_size"`
	Available  bool   `json:"available"`

	R             *float64 `json:"r"`
	RSquared      *float64 `json:"r_squared"`
	Slope         *float64 `json:"slope"`
	Intercept     *float64 `json:"intercept"`
	PValue        *float64 `json:"p_value"`
	IsSignificant bool     `json:"is_significant"`

	Strength  string `json:"strength"`
	Direction string `json:"direction"`

	Points         []Point `json:"points,omitempty"`
	RegressionLine []Point `json:"regression_line,omitempty"`
}

// SummaryStats are the simple descriptors computed over a derived per-district
// rate series. Nil fields mean "not available" for a degenerate series.
type SummaryStats struct {
	Metric   string   `json:"metric"`
	Count    int      `json:"count"`
	Mean     *float64 `json:"mean"`
	Median   *float64 `json:"median"`
	Mode     *float64 `json:"mode"`
	StdDev   *float64 `json:"std_dev"`
	CV       *float64 `json:"coefficient_of_variation"`
	Skewness *float64 `json:"skewness"`
}

// Dashboard bundles every report section for the landing view.
type Dashboard struct {
	Descriptive []DistrictPerformance `json:"descriptive"`
	Forecast    []DistrictForecast    `json:"forecast"`
	Correlation *CorrelationResult    `json:"correlation"`
	Summary     []SummaryStats        `json:"summary"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
