package http

import (
	"net/http"

	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/internal/bot/service"
	"golang-stock-bot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusHandler serves liveness and scheduler state.
type StatusHandler struct {
	schedulerService service.SchedulerService
	logger           *logger.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(schedulerService service.SchedulerService, logger *logger.Logger) *StatusHandler {
	return &StatusHandler{schedulerService: schedulerService, logger: logger}
}

// RegisterRoutes registers /healthz on the root and /schedule on the API group.
func (h *StatusHandler) RegisterRoutes(e *echo.Echo, g *echo.Group) {
	e.GET("/healthz", h.Health)
	g.GET("/schedule", h.GetSchedule)
}

// Health godoc
// @Summary Liveness check
// @Description Reports that the bot process is up
// @Tags status
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *StatusHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// GetSchedule godoc
// @Summary Get scheduler state
// @Description Get the scheduler mode with the time of the last and the next update
// @Tags status
// @Produce  json
// @Success 200 {object} dto.ScheduleStatusResponse
// @Router /api/v1/schedule [get]
func (h *StatusHandler) GetSchedule(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewScheduleStatusResponse(
		string(h.schedulerService.Mode()),
		h.schedulerService.NextRun(),
		h.schedulerService.LastRun(),
	))
}
