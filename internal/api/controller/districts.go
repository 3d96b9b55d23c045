package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) ListDistricts(ctx echo.Context) error {
	districts, err := c.reports.ListDistricts(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, districts)
}

func (c *Controller) ListYearLabels(ctx echo.Context) error {
	labels, err := c.reports.ListYearLabels(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, labels)
}
