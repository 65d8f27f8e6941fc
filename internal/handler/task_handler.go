package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskRepository is the store surface the handler needs. Satisfied by
// *repository.TaskRepository; tests substitute a mock.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByUserID(ctx context.Context, userID string) ([]model.Task, error)
	GetByUserIDAndStatus(ctx context.Context, userID, status string) ([]model.Task, error)
	GetMaxPosition(ctx context.Context, userID, status string) (int, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskHandler struct {
	taskRepo TaskRepository
}

func NewTaskHandler(taskRepo TaskRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// UpdateTaskRequest carries a partial update. Pointer fields distinguish an
// omitted field from one deliberately set to its zero value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReorderTasksRequest struct {
	Tasks []struct {
		ID string `json:"id" binding:"required"`
	} `json:"tasks" binding:"required"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UserID      string `json:"userId"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"createdAt"`
}

func toTaskResponse(task model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
		Order:       task.Position,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
}

// Create adds a task at the end of its (userId, status) column
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, status and userId are required"})
		return
	}

	maxPosition, err := h.taskRepo.GetMaxPosition(c.Request.Context(), req.UserID, req.Status)
	if err != nil {
		log.WithError(err).Error("failed to determine task position")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		UserID:      req.UserID,
		Position:    maxPosition + 1,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		log.WithError(err).Error("failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskId":  task.ID.String(),
	})
}

// List returns all of a user's tasks ordered by position
func (h *TaskHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	tasks, err := h.taskRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Error("failed to list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = toTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

// ListByCategory returns a user's tasks in a single status column
func (h *TaskHandler) ListByCategory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	category := c.Param("category")

	tasks, err := h.taskRepo.GetByUserIDAndStatus(c.Request.Context(), userID, category)
	if err != nil {
		log.WithError(err).Error("failed to list tasks by category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = toTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

// Update applies the fields present in the request body, leaving the rest
// untouched
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Order != nil {
		fields["position"] = *req.Order
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.taskRepo.UpdateFields(c.Request.Context(), taskID, fields); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.WithError(err).Error("failed to update task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// UpdateStatus moves a task to another status column
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	fields := map[string]interface{}{"status": req.Status}
	if err := h.taskRepo.UpdateFields(c.Request.Context(), taskID, fields); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.WithError(err).Error("failed to update task status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated successfully"})
}

// Reorder writes the desired final order of a set of tasks: the element at
// index i gets position i. The batch is transactional, so an unknown id
// leaves every position unchanged.
func (h *TaskHandler) Reorder(c *gin.Context) {
	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tasks must be a non-empty array of {id} objects"})
		return
	}

	ids := make([]uuid.UUID, len(req.Tasks))
	for i, t := range req.Tasks {
		id, err := uuid.Parse(t.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
			return
		}
		ids[i] = id
	}

	if err := h.taskRepo.Reorder(c.Request.Context(), ids); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or more tasks not found"})
			return
		}
		log.WithError(err).Error("failed to reorder tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tasks reordered successfully"})
}

// Delete permanently removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		log.WithError(err).Error("failed to delete task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
