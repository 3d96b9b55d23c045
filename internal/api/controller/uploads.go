package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/labstack/echo/v4"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) ImportUpload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open multipart file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	uploadedBy := ctx.FormValue("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = "admin"
	}

	upload, count, err := c.importer.Import(ctx.Request().Context(), f, fileHeader.Filename, uploadedBy)
	if err != nil {
		return err
	}

	type response struct {
		Upload       *domain.SolarUpload `json:"upload"`
		ImportedRows int                 `json:"imported_rows"`
	}

	return ctx.JSON(http.StatusCreated, response{Upload: upload, ImportedRows: count})
}

func (c *Controller) ListUploads(ctx echo.Context) error {
	uploads, err := c.importer.List(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, uploads)
}

func (c *Controller) DeleteUpload(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload id")
	}

	if err = c.importer.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) DownloadUpload(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload id")
	}

	upload, f, err := c.importer.Download(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, upload.OriginalFilename))

	return ctx.Stream(http.StatusOK, contentTypeXLSX, f)
}

func (c *Controller) DownloadTemplate(ctx echo.Context) error {
	data, err := c.importer.Template()
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="SolarPumpData_template.xlsx"`)

	return ctx.Blob(http.StatusOK, contentTypeXLSX, data)
}
