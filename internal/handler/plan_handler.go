package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"growthplan/internal/service/plangen"
	"growthplan/pkg/logger"
)

type PlanHandler struct {
	seeder *plangen.Seeder
	logger *zap.Logger
}

func NewPlanHandler(seeder *plangen.Seeder, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{seeder: seeder, logger: logger}
}

// GetDay serves the day view: gate-aware, lazily seeds the week on first
// view. This endpoint never fails on generator or persistence errors.
func (h *PlanHandler) GetDay(c *gin.Context) {
	userID := c.GetInt("user_id")
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid day"})
		return
	}

	logger.WithTrace(c.Request.Context(), h.logger).Info("Day view requested",
		zap.Int("user_id", userID),
		zap.Int("day", day),
	)

	view := h.seeder.LoadDay(c.Request.Context(), userID, day)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"day":     view.Day,
		"week":    view.Week,
		"locked":  view.Locked,
		"message": view.Message,
		"tasks":   view.Tasks,
	})
}

// GenerateDay regenerates tasks for a single day on demand.
func (h *PlanHandler) GenerateDay(c *gin.Context) {
	userID := c.GetInt("user_id")
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid day"})
		return
	}

	view := h.seeder.GenerateDay(c.Request.Context(), userID, day)
	if view.Locked {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"locked":  true,
			"message": view.Message,
			"tasks":   view.Tasks,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": view.Tasks})
}

// GenerateWeek seeds an entire week if its generation gate is met.
func (h *PlanHandler) GenerateWeek(c *gin.Context) {
	userID := c.GetInt("user_id")
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid week"})
		return
	}

	logger.WithTrace(c.Request.Context(), h.logger).Info("Week generation requested",
		zap.Int("user_id", userID),
		zap.Int("week", week),
	)

	tasks := h.seeder.EnsureWeekSeeded(c.Request.Context(), userID, week)
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

type importPlanRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportPlan parses a long-form plan document into tasks.
func (h *PlanHandler) ImportPlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	var req importPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "text required"})
		return
	}

	tasks := h.seeder.ImportPlan(c.Request.Context(), userID, req.Text)
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}
