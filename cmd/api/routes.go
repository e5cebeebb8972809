package main

import (
	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/config"
	"voice-call-dashboard/internal/httpapi"
	"voice-call-dashboard/internal/ingest"
	"voice-call-dashboard/internal/metrics"
	"voice-call-dashboard/internal/pricing"

	"github.com/gin-gonic/gin"
)

// registerRoutes builds the services over backend and wires them to HTTP routes.
// Keep this file free of business logic.
func registerRoutes(r *gin.Engine, cfg config.Config, backend *calls.Backend) {
	ingestSvc := ingest.NewService(backend.Calls, ingest.Options{
		Estimator: pricing.NewEstimator(cfg.Dashboard.CostPerMinute),
	})
	metricsSvc := metrics.NewService(backend.Calls, metrics.NewAggregator(cfg.Dashboard.InitialBalance))

	h := httpapi.NewHandlers(httpapi.Handlers{
		Calls:   backend.Calls,
		Leads:   backend.Leads,
		Ingest:  ingestSvc,
		Metrics: metricsSvc,
		Migrate: backend.Migrate,
	})
	h.Register(r)
}
