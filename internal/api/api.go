package api

import (
	"context"

	"github.com/agrisolar/portal/internal/api/controller"
	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/agrisolar/portal/internal/pkg/notifier"
	"github.com/agrisolar/portal/internal/pkg/store"
	"github.com/agrisolar/portal/internal/service/auth"
	"github.com/agrisolar/portal/internal/service/importer"
	"github.com/agrisolar/portal/internal/service/report"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store, files importer.FileStore) (*APIService, error) {
	svc := &APIService{router: echo.New()}
	svc.router.HideBanner = true

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperAllowOriginKey)},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	markers := viper.GetStringSlice(constants.ViperTotalRowsKey)
	if len(markers) == 0 {
		markers = constants.DefaultTotalRowMarkers
	}

	importerService := importer.NewService(st, files, markers)
	reportService := report.NewService(st)
	authService := auth.NewService(notifier.WithRetry(notifier.LogNotifier{}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(importerService, reportService, authService)

	uploads := api.Group("/uploads")
	uploads.POST("", cntrl.ImportUpload, svc.AdminMiddleware)
	uploads.DELETE("/:id", cntrl.DeleteUpload, svc.AdminMiddleware)
	uploads.GET("", cntrl.ListUploads)
	uploads.GET("/template", cntrl.DownloadTemplate)
	uploads.GET("/:id/download", cntrl.DownloadUpload)

	reports := api.Group("/reports")
	reports.GET("/descriptive", cntrl.GetDescriptiveReport)
	reports.GET("/predictive", cntrl.GetPredictiveReport)
	reports.GET("/correlation", cntrl.GetCorrelationReport)
	reports.GET("/summary", cntrl.GetSummaryReport)
	reports.GET("/dashboard", cntrl.GetDashboard)

	districts := api.Group("/districts")
	districts.GET("/list", cntrl.ListDistricts)

	years := api.Group("/years")
	years.GET("/list", cntrl.ListYearLabels)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)

	return svc, nil
}
