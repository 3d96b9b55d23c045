package controller

import (
	"net/http"

	"github.com/agrisolar/portal/internal/service/report"
	"github.com/labstack/echo/v4"
)

// parseFilter reads the multi-value year/district selection. Absent params
// (or the literal "all") select everything; district=none is the explicit
// empty selection the UI sends when every checkbox is cleared.
func parseFilter(ctx echo.Context) report.Filter {
	filter := report.Filter{}

	years := ctx.QueryParams()["year"]
	if len(years) > 0 && !contains(years, "all") {
		filter.Years = years
	}

	districts := ctx.QueryParams()["district"]
	switch {
	case contains(districts, "none"):
		filter.DistrictsNone = true
	case len(districts) > 0 && !contains(districts, "all"):
		filter.Districts = districts
	}

	return filter
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func (c *Controller) GetDescriptiveReport(ctx echo.Context) error {
	results, err := c.reports.Descriptive(ctx.Request().Context(), parseFilter(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, results)
}

func (c *Controller) GetPredictiveReport(ctx echo.Context) error {
	results, err := c.reports.Predictive(ctx.Request().Context(), parseFilter(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, results)
}

func (c *Controller) GetCorrelationReport(ctx echo.Context) error {
	xMetric := ctx.QueryParam("x")
	if xMetric == "" {
		xMetric = "booking"
	}
	yMetric := ctx.QueryParam("y")
	if yMetric == "" {
		yMetric = "installed"
	}

	result, err := c.reports.Correlation(ctx.Request().Context(), parseFilter(ctx), xMetric, yMetric)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

func (c *Controller) GetSummaryReport(ctx echo.Context) error {
	results, err := c.reports.Summary(ctx.Request().Context(), parseFilter(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, results)
}

func (c *Controller) GetDashboard(ctx echo.Context) error {
	dashboard, err := c.reports.Dashboard(ctx.Request().Context(), parseFilter(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dashboard)
}
