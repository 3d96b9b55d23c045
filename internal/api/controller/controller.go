package controller

import (
	"github.com/agrisolar/portal/internal/service/auth"
	"github.com/agrisolar/portal/internal/service/importer"
	"github.com/agrisolar/portal/internal/service/report"
)

type Controller struct {
	importer *importer.Service
	reports  *report.Service
	auth     *auth.Service
}

func NewController(importerService *importer.Service, reportService *report.Service, authService *auth.Service) *Controller {
	return &Controller{
		importer: importerService,
		reports:  reportService,
		auth:     authService,
	}
}
