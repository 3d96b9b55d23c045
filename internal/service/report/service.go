package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/pkg/analytics"
	"github.com/agrisolar/portal/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Filter narrows the dataset before aggregation. Nil slices mean "all";
// DistrictsNone is the explicit empty selection, distinct from leaving the
// districts unspecified.
type Filter struct {
	Years         []domain.YearLabel
	Districts     []string
	DistrictsNone bool
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// loadFiltered reloads the full persisted dataset and applies the filter.
// Reports always recompute from the currently persisted rows; there is no
// aggregate cache to invalidate.
func (s *Service) loadFiltered(ctx context.Context, filter Filter) ([]domain.SolarRecord, error) {
	if filter.DistrictsNone {
		return nil, nil
	}

	rows, err := s.store.ListSolarRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListSolarRecords: %w", err)
	}

	years := toSet(filter.Years)
	districts := toSet(filter.Districts)

	filtered := make([]domain.SolarRecord, 0, len(rows))
	for _, row := range rows {
		if years != nil {
			if _, ok := years[row.YearLabel]; !ok {
				continue
			}
		}
		if districts != nil {
			if _, ok := districts[row.DistrictName]; !ok {
				continue
			}
		}
		filtered = append(filtered, *row)
	}

	return filtered, nil
}

func (s *Service) Descriptive(ctx context.Context, filter Filter) ([]domain.DistrictPerformance, error) {
	records, err := s.loadFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	return analytics.DescriptiveMetrics(records), nil
}

// Predictive returns the forecast rows re-sorted alphabetically for table
// display; the engine's own order is by predicted value.
func (s *Service) Predictive(ctx context.Context, filter Filter) ([]domain.DistrictForecast, error) {
	records, err := s.loadFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	forecasts := analytics.DistrictForecasts(records)
	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].District < forecasts[j].District
	})

	return forecasts, nil
}

func (s *Service) Correlation(ctx context.Context, filter Filter, xMetric, yMetric string) (*domain.CorrelationResult, error) {
	records, err := s.loadFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	return analytics.Correlation(records, xMetric, yMetric)
}

// Summary computes the statistical descriptors over the derived per-district
// rate columns of the descriptive report.
func (s *Service) Summary(ctx context.Context, filter Filter) ([]domain.SummaryStats, error) {
	records, err := s.loadFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	return summarize(records), nil
}

func summarize(records []domain.SolarRecord) []domain.SummaryStats {
	performance := analytics.DescriptiveMetrics(records)

	efficiency := make([]float64, 0, len(performance))
	targetRate := make([]float64, 0, len(performance))
	rejection := make([]float64, 0, len(performance))
	scores := make([]float64, 0, len(performance))
	for _, p := range performance {
		efficiency = append(efficiency, p.AvgEfficiency)
		targetRate = append(targetRate, p.AvgTargetRate)
		rejection = append(rejection, p.AvgRejection)
		scores = append(scores, p.Score)
	}

	return []domain.SummaryStats{
		analytics.Summarize("avg_efficiency", efficiency),
		analytics.Summarize("avg_target_rate", targetRate),
		analytics.Summarize("avg_rejection", rejection),
		analytics.Summarize("score", scores),
	}
}

// Dashboard computes every report section over one filtered snapshot. The
// sections are independent pure computations, so they run concurrently.
func (s *Service) Dashboard(ctx context.Context, filter Filter) (*domain.Dashboard, error) {
	records, err := s.loadFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	dashboard := new(domain.Dashboard)

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		dashboard.Descriptive = analytics.DescriptiveMetrics(records)
		return nil
	})
	eg.Go(func() error {
		dashboard.Forecast = analytics.DistrictForecasts(records)
		return nil
	})
	eg.Go(func() error {
		correlation, corrErr := analytics.Correlation(records, "booking", "installed")
		if corrErr != nil {
			return corrErr
		}
		dashboard.Correlation = correlation
		return nil
	})
	eg.Go(func() error {
		dashboard.Summary = summarize(records)
		return nil
	})

	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

func (s *Service) ListYearLabels(ctx context.Context) ([]domain.YearLabel, error) {
	labels, err := s.store.ListYearLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListYearLabels: %w", err)
	}

	return labels, nil
}

func (s *Service) ListDistricts(ctx context.Context) ([]*domain.District, error) {
	districts, err := s.store.ListDistricts(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListDistricts: %w", err)
	}

	return districts, nil
}

func toSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
