package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	contractsmq "growthplan/contracts/mq"
	"growthplan/internal/repository"
	"growthplan/internal/service/plangen"
)

type TaskHandler struct {
	repo      *repository.TaskRepository
	publisher plangen.EventPublisher // optional
	logger    *zap.Logger
}

func NewTaskHandler(repo *repository.TaskRepository, publisher plangen.EventPublisher, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, publisher: publisher, logger: logger}
}

// ListTasks returns a user's tasks filtered by day or week.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.GetInt("user_id")

	if dayRaw := c.Query("day"); dayRaw != "" {
		day, err := strconv.Atoi(dayRaw)
		if err != nil || day < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid day"})
			return
		}
		tasks, err := h.repo.ListByDay(c.Request.Context(), userID, day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch tasks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
		return
	}

	weekRaw := c.Query("week")
	week, err := strconv.Atoi(weekRaw)
	if err != nil || week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "day or week required"})
		return
	}
	tasks, err := h.repo.ListByWeek(c.Request.Context(), userID, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

type completeTaskRequest struct {
	Note string `json:"note"`
}

// CompleteTask transitions pending→completed and publishes task.completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	taskID := c.Param("id")

	var req completeTaskRequest
	_ = c.ShouldBindJSON(&req) // note 可选

	updated, err := h.repo.MarkCompleted(c.Request.Context(), userID, taskID, req.Note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to complete task"})
		return
	}
	if !updated {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "task is not pending"})
		return
	}

	h.logger.Info("Task completed",
		zap.Int("user_id", userID),
		zap.String("task_id", taskID),
	)

	if h.publisher != nil {
		task, err := h.repo.Get(c.Request.Context(), userID, taskID)
		if err == nil && task != nil {
			payload := contractsmq.TaskCompletedPayload{
				TaskID: task.ID,
				UserID: userID,
				Title:  task.Title,
				Day:    task.Day,
			}
			if err := h.publisher.Publish(contractsmq.RoutingKeyTaskCompleted, payload); err != nil {
				h.logger.Error("Failed to publish task.completed event",
					zap.String("task_id", taskID),
					zap.Error(err),
				)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SkipTask transitions pending→skipped.
func (h *TaskHandler) SkipTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	taskID := c.Param("id")

	updated, err := h.repo.MarkSkipped(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to skip task"})
		return
	}
	if !updated {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "task is not pending"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTask removes a task. User-initiated only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetInt("user_id")
	taskID := c.Param("id")

	deleted, err := h.repo.Delete(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete task"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
