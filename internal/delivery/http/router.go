package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, riskSvc *service.RiskService) {
	handler := NewHandler(riskSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Scoring endpoints
		api.Get("/risk", handler.GetPointRisk)
		api.Get("/heatmap", handler.GetHeatmap)
		api.Get("/heatmap.geojson", handler.GetHeatmapGeoJSON)
		api.Get("/crosswalks", handler.GetCrosswalks)
		api.Get("/classify", handler.Classify)
	}
}
