package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	riskSvc *service.RiskService
}

// NewHandler creates a new handler
func NewHandler(riskSvc *service.RiskService) *Handler {
	return &Handler{riskSvc: riskSvc}
}

type pointQuery struct {
	Lat    *float64 `query:"lat"`
	Lon    *float64 `query:"lon"`
	Radius float64  `query:"radius"`
	Year   int      `query:"year"`
}

type boundsQuery struct {
	South float64 `query:"south"`
	West  float64 `query:"west"`
	North float64 `query:"north"`
	East  float64 `query:"east"`
	Year  int     `query:"year"`
}

func (q boundsQuery) bounds() domain.Bounds {
	return domain.Bounds{South: q.South, West: q.West, North: q.North, East: q.East}
}

type classifyQuery struct {
	Score *float64 `query:"score"`
	Kind  string   `query:"kind"`
}

// serviceError maps service errors to HTTP errors
func serviceError(err error, msg string) error {
	if errors.Is(err, domain.ErrInvalidCoordinate) || errors.Is(err, domain.ErrInvalidInput) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	zap.L().Error(msg, zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, msg)
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	if err := h.riskSvc.Health(c.Context()); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		database = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "crosswalk-risk",
		"version":  "1.0.0",
		"database": database,
		"mock":     h.riskSvc.IsMock(),
	})
}

// GetPointRisk returns the risk and crosswalk safety analysis around a point
func (h *Handler) GetPointRisk(c *fiber.Ctx) error {
	var q pointQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if q.Lat == nil || q.Lon == nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon are required")
	}

	analysis, err := h.riskSvc.AnalyzePoint(c.Context(), *q.Lat, *q.Lon, q.Radius, q.Year)
	if err != nil {
		return serviceError(err, "Failed to analyze point")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    analysis,
	})
}

// GetHeatmap returns scored region points for the map overlay
func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	var q boundsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	heatmap, err := h.riskSvc.Heatmap(c.Context(), q.bounds(), q.Year)
	if err != nil {
		return serviceError(err, "Failed to build heatmap")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    heatmap,
		"count":   len(heatmap.Points),
	})
}

// GetHeatmapGeoJSON returns the heatmap as a GeoJSON FeatureCollection
func (h *Handler) GetHeatmapGeoJSON(c *fiber.Ctx) error {
	var q boundsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	fc, err := h.riskSvc.HeatmapGeoJSON(c.Context(), q.bounds(), q.Year)
	if err != nil {
		return serviceError(err, "Failed to build heatmap")
	}

	if err := c.JSON(fc); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return nil
}

// GetCrosswalks returns scored crosswalks inside the bounds
func (h *Handler) GetCrosswalks(c *fiber.Ctx) error {
	var q boundsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	crosswalks, err := h.riskSvc.CrosswalkSafety(c.Context(), q.bounds())
	if err != nil {
		return serviceError(err, "Failed to score crosswalks")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    crosswalks,
		"count":   len(crosswalks),
	})
}

// Classify maps a score to its label and tone
func (h *Handler) Classify(c *fiber.Ctx) error {
	var q classifyQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if q.Score == nil {
		return fiber.NewError(fiber.StatusBadRequest, "score is required")
	}
	kind := domain.ScoreKind(q.Kind)
	if kind == "" {
		kind = domain.KindRisk
	}

	classification, err := h.riskSvc.Classify(*q.Score, kind)
	if err != nil {
		return serviceError(err, "Failed to classify score")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    classification,
	})
}
