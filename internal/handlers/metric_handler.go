package handlers

import (
	"errors"
	"log/slog"

	"github.com/emrekzl/trackly-backend/internal/dto"
	"github.com/emrekzl/trackly-backend/internal/middleware"
	"github.com/emrekzl/trackly-backend/internal/models"
	"github.com/emrekzl/trackly-backend/internal/services"
	"github.com/emrekzl/trackly-backend/internal/timeparse"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MetricHandler struct {
	metricService *services.MetricService
}

func NewMetricHandler(metricService *services.MetricService) *MetricHandler {
	return &MetricHandler{metricService: metricService}
}

func (h *MetricHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	metric, err := h.metricService.CreateMetric(user, req.Name)
	if err != nil {
		slog.Error("metric creation failed", "action", "create_metric", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(metric)
}

func (h *MetricHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	metrics, err := h.metricService.ListMetrics(user)
	if err != nil {
		slog.Error("metric listing failed", "action", "list_metrics", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(metrics)
}

func (h *MetricHandler) Delete(c *fiber.Ctx) error {
	user, metric, err := h.resolveMetric(c)
	if err != nil {
		return h.metricError(c, user, err)
	}

	if err := h.metricService.DeleteMetric(user, metric.ID); err != nil {
		return h.metricError(c, user, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddValues accepts a batch of observations. Timestamps are normalized at
// this boundary; a malformed entry rejects the whole batch before anything
// is written.
func (h *MetricHandler) AddValues(c *fiber.Ctx) error {
	user, metric, err := h.resolveMetric(c)
	if err != nil {
		return h.metricError(c, user, err)
	}

	var entries []dto.ValueEntry
	if err := c.BodyParser(&entries); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	values := make([]models.Value, 0, len(entries))
	for _, entry := range entries {
		ts, err := timeparse.Normalize(entry.Timestamp)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		values = append(values, models.Value{Timestamp: ts, Amount: entry.Value})
	}

	if err := h.metricService.AddValues(metric, values); err != nil {
		return h.metricError(c, user, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Values recorded"})
}

func (h *MetricHandler) ListValues(c *fiber.Ctx) error {
	user, metric, err := h.resolveMetric(c)
	if err != nil {
		return h.metricError(c, user, err)
	}

	values, err := h.metricService.ListValues(metric)
	if err != nil {
		return h.metricError(c, user, err)
	}

	return c.JSON(values)
}

// resolveMetric loads the :id metric scoped to the caller. An unparseable id
// gets the same not-found treatment as a foreign or missing one.
func (h *MetricHandler) resolveMetric(c *fiber.Ctx) (*models.User, *models.Metric, error) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return nil, nil, err
	}

	metricID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return user, nil, services.ErrMetricNotFound
	}

	metric, err := h.metricService.GetMetric(user, metricID)
	if err != nil {
		return user, nil, err
	}
	return user, metric, nil
}

func (h *MetricHandler) metricError(c *fiber.Ctx, user *models.User, err error) error {
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	if errors.Is(err, services.ErrMetricNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	slog.Error("metric request failed", "user_id", user.ID.String(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
